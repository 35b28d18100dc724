package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/mgit/internal/cmd"
)

var (
	_ Prober = Shell{}
	_ Prober = (*Fake)(nil)
)

func TestShell_Version(t *testing.T) {
	t.Parallel()

	got, err := Shell{Timeout: 5 * time.Second}.Version(context.Background(), "sh", "-c", "echo; echo 'tool 1.2.3'; echo extra")
	if err != nil {
		t.Fatalf("Version() = %v", err)
	}
	if got != "tool 1.2.3" {
		t.Errorf("Version() = %q, want first non-empty line", got)
	}
}

func TestShell_VersionNoOutput(t *testing.T) {
	t.Parallel()

	_, err := Shell{}.Version(context.Background(), "true")
	if !errors.Is(err, ErrNoOutput) {
		t.Errorf("Version(true) error = %v, want ErrNoOutput", err)
	}
}

func TestShell_NotFound(t *testing.T) {
	t.Parallel()

	p := Shell{}
	if p.Exists("mgit-definitely-not-installed") {
		t.Error("Exists() = true for missing command")
	}
	_, err := p.Version(context.Background(), "mgit-definitely-not-installed", "--version")
	if !errors.Is(err, cmd.ErrNotFound) {
		t.Errorf("Version() error = %v, want cmd.ErrNotFound", err)
	}
}

func TestShell_RunFailureCarriesStderr(t *testing.T) {
	t.Parallel()

	err := Shell{}.Run(context.Background(), "sh", "-c", "echo 'not logged in' >&2; exit 1")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("Run() error = %v, want stderr text", err)
	}
}

func TestShell_Timeout(t *testing.T) {
	t.Parallel()

	err := Shell{Timeout: 50 * time.Millisecond}.Run(context.Background(), "sleep", "5")
	if err == nil || !strings.Contains(err.Error(), "timed out after 50ms") {
		t.Errorf("Run() error = %v, want timeout", err)
	}
}

func TestFake(t *testing.T) {
	t.Parallel()

	authErr := errors.New("You are not logged into any GitHub hosts")
	f := &Fake{
		Installed: map[string]bool{"git": true, "gh": true},
		Outputs:   map[string]string{"git --version": "git version 2.44.0"},
		Errors:    map[string]error{"gh auth status": authErr},
	}
	ctx := context.Background()

	if v, err := f.Version(ctx, "git", "--version"); err != nil || v != "git version 2.44.0" {
		t.Errorf("Version(git) = %q, %v", v, err)
	}
	if _, err := f.Version(ctx, "go", "version"); !errors.Is(err, cmd.ErrNotFound) {
		t.Errorf("Version(go) error = %v, want ErrNotFound", err)
	}
	if err := f.Run(ctx, "gh", "auth", "status"); !errors.Is(err, authErr) {
		t.Errorf("Run(gh auth status) = %v, want %v", err, authErr)
	}
	if err := f.Run(ctx, "git", "status"); err != nil {
		t.Errorf("Run(git status) = %v, want nil", err)
	}

	want := []string{"git --version", "go version", "gh auth status", "git status"}
	got := f.Calls()
	if len(got) != len(want) {
		t.Fatalf("Calls() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Calls()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
