package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoUpstream indicates the current branch does not track a remote branch.
var ErrNoUpstream = errors.New("no upstream configured")

// IsRepo reports whether path is the root of a git checkout (.git dir or file).
func IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// Clone clones url into dest, creating dest's parent directories.
func Clone(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", dest, err)
	}
	if err := runGit(ctx, "", "clone", "--quiet", url, dest); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// Fetch fetches origin without touching the working tree
func Fetch(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "fetch", "--quiet", "origin"); err != nil {
		return fmt.Errorf("fetch origin: %w", err)
	}
	return nil
}

// PullFastForward fast-forwards the current branch to its upstream.
// Fails rather than creating a merge commit.
func PullFastForward(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "pull", "--ff-only", "--quiet"); err != nil {
		return fmt.Errorf("pull --ff-only: %w", err)
	}
	return nil
}

// GetCurrentBranch returns the current branch name
// Returns "(detached)" for detached HEAD state
func GetCurrentBranch(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %w", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// GetUpstream returns the upstream ref of the current branch, e.g. "origin/main".
func GetUpstream(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return "", ErrNoUpstream
	}
	return strings.TrimSpace(string(output)), nil
}

// IsDirty returns true if the work tree has uncommitted changes or untracked files
func IsDirty(ctx context.Context, path string) bool {
	output, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return false // Treat error as clean (safe default)
	}
	return strings.TrimSpace(string(output)) != ""
}

// AheadBehind returns how many commits HEAD is ahead of and behind its upstream.
func AheadBehind(ctx context.Context, path string) (ahead, behind int, err error) {
	output, err := outputGit(ctx, path, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if err != nil {
		return 0, 0, ErrNoUpstream
	}
	return parseAheadBehind(string(output))
}

// parseAheadBehind parses "<ahead>\t<behind>" as printed by rev-list --left-right --count.
func parseAheadBehind(s string) (ahead, behind int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", strings.TrimSpace(s))
	}
	if ahead, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("parse ahead count: %w", err)
	}
	if behind, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("parse behind count: %w", err)
	}
	return ahead, behind, nil
}

// GetOriginURL gets the origin URL for a repository
func GetOriginURL(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin URL: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
