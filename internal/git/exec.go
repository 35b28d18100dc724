package git

import (
	"context"

	"github.com/raphi011/mgit/internal/cmd"
)

// gitArgs targets dir with -C so the child keeps mgit's working directory.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit runs git in dir. The command echo comes from internal/cmd.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit runs git in dir and returns its stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}
