// Package git provides git operations via shell commands.
//
// All operations call the git CLI through [github.com/raphi011/mgit/internal/cmd]
// rather than using Go git libraries, so the user's SSH keys, credential
// helpers and aliases apply.
//
// # Sync Operations
//
// Used by managed-repo sync:
//
//   - [Clone]: Clone into a path, creating parent directories
//   - [Fetch], [PullFastForward]: Update an existing checkout without merging
//
// # Status Queries
//
//   - [GetCurrentBranch], [GetUpstream]: Branch and tracking information
//   - [IsDirty]: Uncommitted or untracked changes
//   - [AheadBehind]: Commits ahead of and behind the upstream
//   - [GetOriginURL], [NormalizeRemoteURL]: Compare remotes across URL styles
//
// # Tool Checks
//
//   - [CheckGit]: Is git installed
package git
