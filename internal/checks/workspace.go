package checks

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/raphi011/mgit/internal/config"
	"github.com/raphi011/mgit/internal/doctor"
	"github.com/raphi011/mgit/internal/git"
	"github.com/raphi011/mgit/internal/probe"
	"github.com/raphi011/mgit/internal/registry"
	"github.com/raphi011/mgit/internal/workspace"
)

// WorkspaceEnv is what the workspace checks inspect. Load errors are
// carried here so they are reported instead of aborting the checkup.
type WorkspaceEnv struct {
	Config      config.Config
	ConfigErr   error
	Context     workspace.Context
	Registry    *registry.Registry
	RegistryErr error
}

// Workspace is the "Workspace" category: config, workspace root, every
// managed repo, and the registry of synced repos.
func Workspace(env WorkspaceEnv, p probe.Prober) doctor.Category {
	return doctor.NewCategory("Workspace", func(yield func(doctor.Diagnostic) bool) {
		if !yield(configLoaded(env)) || !yield(rootExists(env)) {
			return
		}
		for d := range managedRepos(env, p) {
			if !yield(d) {
				return
			}
		}
		yield(registryHealthy(env))
	})
}

func configLoaded(env WorkspaceEnv) doctor.Diagnostic {
	return doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
		switch {
		case env.ConfigErr != nil:
			r.Report(doctor.Warn("Config invalid: " + doctor.ErrorText(env.ConfigErr)))
		case env.Config.File == "":
			r.Report(doctor.Suggest("No config file, run 'mgit config init' to declare managed repos"))
		default:
			r.Report(doctor.OK(fmt.Sprintf("Config %s (%d repos)", env.Config.File, len(env.Config.Repos))))
		}
		return nil
	})
}

func rootExists(env WorkspaceEnv) doctor.Diagnostic {
	return doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
		root := env.Context.Root
		info, err := os.Stat(root)
		switch {
		case os.IsNotExist(err):
			r.Report(doctor.Suggest("Workspace root " + root + " does not exist yet, run 'mgit ensure'"))
		case err != nil:
			r.Report(doctor.Warn("Workspace root " + root + ": " + doctor.ErrorText(err)))
		case !info.IsDir():
			r.Report(doctor.Warn("Workspace root " + root + " is not a directory"))
		default:
			r.Report(doctor.OK("Workspace root " + root))
		}
		return nil
	})
}

// managedRepos yields one diagnostic per declared repo, parsed on demand.
func managedRepos(env WorkspaceEnv, p probe.Prober) iter.Seq[doctor.Diagnostic] {
	return func(yield func(doctor.Diagnostic) bool) {
		for _, url := range env.Config.RepoURLs() {
			if !yield(managedRepo(env, url, p)) {
				return
			}
		}
	}
}

func managedRepo(env WorkspaceEnv, url string, p probe.Prober) doctor.Diagnostic {
	return doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
		repo, err := workspace.ParseRepo(url, env.Context)
		if err != nil {
			r.Report(doctor.Warn(doctor.ErrorText(err)))
			return nil
		}

		if _, err := os.Stat(repo.Path); os.IsNotExist(err) {
			r.Report(doctor.Suggest(repo.Slug() + " is not cloned, run 'mgit ensure'"))
			return nil
		}
		if !git.IsRepo(repo.Path) {
			r.Report(doctor.Warn(repo.Slug() + ": " + repo.Path + " is not a git repository"))
			return nil
		}

		if p.Exists("git") {
			r.Test(func(ctx context.Context) (doctor.Result, error) {
				origin, err := git.GetOriginURL(ctx, repo.Path)
				if err != nil {
					return doctor.Result{}, fmt.Errorf("%s: %w", repo.Slug(), err)
				}
				if !repo.MatchesOrigin(origin) {
					return doctor.Warn(repo.Slug() + ": origin points to " + origin), nil
				}
				return doctor.OK(repo.Slug()), nil
			})
		} else {
			r.Report(doctor.OK(repo.Slug()))
		}

		if env.Config.Ensure.VSCodeWorkspace {
			r.Test(func(context.Context) (doctor.Result, error) {
				files, err := workspace.FindWorkspaceFiles(repo.Path, workspace.MatchersFor(env.Config.Ensure.WorkspaceMatcher))
				if err != nil {
					return doctor.Result{}, err
				}
				if len(files) == 0 {
					return doctor.Suggest(repo.Slug() + " has no VS Code workspace file, run 'mgit ensure'"), nil
				}
				return doctor.OK(repo.Slug() + " VS Code workspace"), nil
			})
		}
		return nil
	})
}

func registryHealthy(env WorkspaceEnv) doctor.Diagnostic {
	return doctor.DiagnosticFunc(func(_ context.Context, r doctor.Reporter) error {
		if env.RegistryErr != nil {
			r.Report(doctor.Warn("Registry unreadable: " + doctor.ErrorText(env.RegistryErr)))
			return nil
		}
		if env.Registry == nil {
			return nil
		}

		stale := env.Registry.Stale()
		for _, e := range stale {
			r.Report(doctor.Warn(e.Slug + " was synced to " + e.Path + " but the directory is gone, run 'mgit ensure --prune'"))
		}
		if len(stale) == 0 {
			r.Report(doctor.OK(fmt.Sprintf("Registry (%d synced repos)", len(env.Registry.Repos))))
		}
		return nil
	})
}
