// Package workspace keeps a declared set of git repos cloned and up to date
// under a workspace root, laid out as <root>/<host>/<owner>/<name>.
//
// [EnsureRepo] is idempotent: it clones missing repos, fast-forwards clean
// ones, scaffolds a VS Code workspace file and creates the dependency
// folders that workspace files reference. [Status] summarises every
// managed repo for `mgit status`.
package workspace
