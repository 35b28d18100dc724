package git

import (
	"errors"

	"github.com/raphi011/mgit/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	if _, ok := cmd.LookPath("git"); !ok {
		return ErrGitNotFound
	}
	return nil
}
