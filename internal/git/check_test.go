package git

import (
	"errors"
	"testing"
)

func TestCheckGit_Available(t *testing.T) {
	t.Parallel()
	// git must be available in CI and dev environments
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git should be in PATH)", err)
	}
}

func TestErrGitNotFound_Sentinel(t *testing.T) {
	t.Parallel()
	wrapped := errors.Join(errors.New("probe"), ErrGitNotFound)
	if !errors.Is(wrapped, ErrGitNotFound) {
		t.Error("wrapped ErrGitNotFound should match with errors.Is")
	}
}
