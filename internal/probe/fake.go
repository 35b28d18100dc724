package probe

import (
	"context"
	"fmt"
	"sync"

	"github.com/raphi011/mgit/internal/cmd"
)

// Fake is a Prober backed by maps. Keys of Outputs and Errors are the full
// command line, e.g. "git --version".
type Fake struct {
	Installed map[string]bool   // commands reported by Exists
	Outputs   map[string]string // first line printed by a command line
	Errors    map[string]error  // failure of a command line

	mu    sync.Mutex
	calls []string
}

// Version implements Prober.
func (f *Fake) Version(_ context.Context, command string, args ...string) (string, error) {
	key := f.record(command, args)
	if err := f.fail(command, key); err != nil {
		return "", err
	}
	if out, ok := f.Outputs[key]; ok && out != "" {
		return out, nil
	}
	return "", fmt.Errorf("%s: %w", key, ErrNoOutput)
}

// Run implements Prober.
func (f *Fake) Run(_ context.Context, command string, args ...string) error {
	key := f.record(command, args)
	return f.fail(command, key)
}

// Exists implements Prober.
func (f *Fake) Exists(name string) bool {
	return f.Installed[name]
}

// Calls returns the command lines run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) fail(command, key string) error {
	if err := f.Errors[key]; err != nil {
		return err
	}
	if !f.Installed[command] {
		return fmt.Errorf("%s: %w", command, cmd.ErrNotFound)
	}
	return nil
}

func (f *Fake) record(command string, args []string) string {
	key := commandLine(command, args)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	return key
}
