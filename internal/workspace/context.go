package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotGitRepo indicates a repo path exists but is not a git checkout.
var ErrNotGitRepo = errors.New("not a git repository")

// Context locates the workspace. It is passed explicitly to every
// operation instead of living in a global.
type Context struct {
	Root string // absolute workspace root
}

// NewContext returns a Context rooted at root, which must be absolute.
func NewContext(root string) (Context, error) {
	if root == "" {
		return Context{}, errors.New("workspace root is empty")
	}
	if !filepath.IsAbs(root) {
		return Context{}, fmt.Errorf("workspace root must be absolute: %s", root)
	}
	return Context{Root: filepath.Clean(root)}, nil
}
