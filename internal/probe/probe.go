// Package probe inspects external tools for diagnostics.
//
// [Shell] runs real commands through internal/cmd with a per-probe
// timeout. [Fake] answers from maps and is used in tests.
package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raphi011/mgit/internal/cmd"
)

// Prober answers questions about external commands.
type Prober interface {
	// Version runs command with args and returns the first line it printed.
	Version(ctx context.Context, command string, args ...string) (string, error)
	// Run runs command with args and reports only whether it succeeded.
	Run(ctx context.Context, command string, args ...string) error
	// Exists reports whether name resolves to an executable in PATH.
	Exists(name string) bool
}

// ErrNoOutput indicates a version probe printed nothing on stdout.
var ErrNoOutput = errors.New("printed no output")

// Shell probes commands on the host.
type Shell struct {
	// Timeout bounds each probe; zero means no bound.
	Timeout time.Duration
}

// Version implements Prober.
func (s Shell) Version(ctx context.Context, command string, args ...string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := cmd.OutputContext(ctx, "", command, args...)
	if err != nil {
		return "", s.wrap(command, args, err)
	}
	line := cmd.FirstLine(out)
	if line == "" {
		return "", fmt.Errorf("%s: %w", commandLine(command, args), ErrNoOutput)
	}
	return line, nil
}

// Run implements Prober.
func (s Shell) Run(ctx context.Context, command string, args ...string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := cmd.RunContext(ctx, "", command, args...); err != nil {
		return s.wrap(command, args, err)
	}
	return nil
}

// Exists implements Prober.
func (Shell) Exists(name string) bool {
	_, ok := cmd.LookPath(name)
	return ok
}

func (s Shell) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s Shell) wrap(command string, args []string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s", commandLine(command, args), s.Timeout)
	}
	return err
}

func commandLine(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
