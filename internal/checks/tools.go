package checks

import (
	"context"
	"strings"

	"github.com/raphi011/mgit/internal/doctor"
	"github.com/raphi011/mgit/internal/probe"
)

// Git is the "Git" category: git must be installed.
func Git(p probe.Prober) doctor.Category {
	return doctor.NewCategory("Git", doctor.Diagnostics(gitInstalled(p)))
}

func gitInstalled(p probe.Prober) doctor.Diagnostic {
	return doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
		r.Test(func(ctx context.Context) (doctor.Result, error) {
			if !p.Exists("git") {
				return doctor.Suggest("Git not found in PATH, install it"), nil
			}
			v, err := p.Version(ctx, "git", "--version")
			if err != nil {
				return doctor.Result{}, err
			}
			return doctor.OK("Git " + strings.TrimPrefix(v, "git version ")), nil
		})
		return nil
	})
}

// Go is the "Go" category: reports the toolchain version.
// A missing toolchain is a failed probe and shows up as a warning.
func Go(p probe.Prober) doctor.Category {
	return doctor.NewCategory("Go", doctor.Diagnostics(
		doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
			r.Test(func(ctx context.Context) (doctor.Result, error) {
				v, err := p.Version(ctx, "go", "version")
				if err != nil {
					return doctor.Result{}, err
				}
				return doctor.OK(v), nil
			})
			return nil
		}),
	))
}

// BuildDependencies groups Git and Go under one label.
func BuildDependencies(p probe.Prober) doctor.Category {
	return doctor.NewCategory("Build dependencies", doctor.Chain(
		Git(p).Diagnostics,
		Go(p).Diagnostics,
	))
}

// forge describes a hosting CLI.
type forge struct {
	command string
	name    string
	purpose string
}

var forges = []forge{
	{command: "gh", name: "GitHub CLI", purpose: "GitHub"},
	{command: "glab", name: "GitLab CLI", purpose: "GitLab"},
}

// Forges is the "Forge CLIs" category. The CLIs are optional: a missing
// one is a suggestion, an installed but unauthenticated one is a warning.
func Forges(p probe.Prober) doctor.Category {
	return doctor.NewCategory("Forge CLIs", func(yield func(doctor.Diagnostic) bool) {
		for _, f := range forges {
			if !yield(forgeInstalled(p, f)) {
				return
			}
		}
	})
}

func forgeInstalled(p probe.Prober, f forge) doctor.Diagnostic {
	return doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
		if !p.Exists(f.command) {
			r.Report(doctor.Suggest(f.name + " (" + f.command + ") not found in PATH, install it to work with " + f.purpose + " repos"))
			return nil
		}

		r.Test(func(ctx context.Context) (doctor.Result, error) {
			v, err := p.Version(ctx, f.command, "--version")
			if err != nil {
				return doctor.Result{}, err
			}
			return doctor.OK(f.name + ": " + v), nil
		})
		r.Test(func(ctx context.Context) (doctor.Result, error) {
			if err := p.Run(ctx, f.command, "auth", "status"); err != nil {
				return doctor.Warn(f.name + " is not authenticated, run '" + f.command + " auth login'"), nil
			}
			return doctor.OK(f.name + " is authenticated"), nil
		})
		return nil
	})
}
