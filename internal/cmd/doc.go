// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// [RunContext] and [OutputContext] wrap [os/exec.CommandContext], capture
// stderr and use it as the error text when a command fails, so a failing
// probe surfaces as "fatal: not a git repository" rather than "exit status 128".
// Every invocation is echoed through the context logger in verbose mode.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, repoPath, "git", "rev-parse", "HEAD")
//	if err != nil {
//	    return fmt.Errorf("resolve HEAD: %w", err)
//	}
//
// # Design Notes
//
// mgit shells out to git/gh/glab rather than using Go libraries so that the
// user's own configuration (SSH keys, credential helpers) applies.
package cmd
