package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/mgit/internal/git"
	"github.com/raphi011/mgit/internal/log"
	"github.com/raphi011/mgit/internal/registry"
)

// Action is what EnsureRepo did to the checkout.
type Action string

const (
	ActionCloned   Action = "cloned"
	ActionPulled   Action = "pulled"
	ActionUpToDate Action = "up to date"
	ActionFetched  Action = "fetched" // no upstream to pull from
	ActionSkipped  Action = "skipped" // dirty working tree
	ActionFailed   Action = "failed"
)

// EnsureOptions controls EnsureRepo.
type EnsureOptions struct {
	VSCodeWorkspace bool     // scaffold <name>.mgit.code-workspace
	DepsFolders     bool     // create folders referenced by workspace files
	Matchers        []string // workspace file patterns, StrictMatchers() when empty

	// Registry is the registry file to record syncs in; empty skips recording.
	Registry string

	// Now stamps SyncedAt; time.Now when nil.
	Now func() time.Time
}

func (o EnsureOptions) matchers() []string {
	if len(o.Matchers) == 0 {
		return StrictMatchers()
	}
	return o.Matchers
}

func (o EnsureOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// EnsureResult describes one ensured repo.
type EnsureResult struct {
	Repo           Repo
	Action         Action
	Reason         string   // why the pull was skipped
	WorkspaceFile  string   // scaffolded workspace file, empty if one existed
	CreatedFolders []string // dependency folders created
	Err            error    // set by EnsureAll
}

// EnsureRepo makes sure repo is cloned and up to date. Safe to run repeatedly:
// a missing checkout is cloned, a clean one is fast-forwarded and a dirty
// one is only fetched.
func EnsureRepo(ctx context.Context, repo Repo, opts EnsureOptions) (EnsureResult, error) {
	l := log.FromContext(ctx)
	res := EnsureResult{Repo: repo}

	info, err := os.Stat(repo.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		l.Debug("cloning repo", "slug", repo.Slug())
		if err := git.Clone(ctx, repo.CloneURL(), repo.Path); err != nil {
			return res, err
		}
		res.Action = ActionCloned
	case err != nil:
		return res, fmt.Errorf("stat %s: %w", repo.Path, err)
	case !info.IsDir() || !git.IsRepo(repo.Path):
		return res, fmt.Errorf("%s: %w", repo.Path, ErrNotGitRepo)
	default:
		l.Debug("updating repo", "slug", repo.Slug())
		res.Action, res.Reason, err = update(ctx, repo.Path)
		if err != nil {
			return res, err
		}
	}

	if opts.VSCodeWorkspace {
		res.WorkspaceFile, err = ensureWorkspaceFile(repo, opts.matchers())
		if err != nil {
			return res, fmt.Errorf("vscode workspace: %w", err)
		}
	}

	if opts.DepsFolders {
		res.CreatedFolders, err = ensureDepsFolders(repo, opts.matchers())
		if err != nil {
			return res, fmt.Errorf("workspace folders: %w", err)
		}
	}

	if opts.Registry != "" {
		entry := registry.Entry{Slug: repo.Slug(), Path: repo.Path, SyncedAt: opts.now()}
		err := registry.Update(opts.Registry, func(r *registry.Registry) error {
			r.Upsert(entry)
			return nil
		})
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

// update fetches origin and fast-forwards a clean branch that has an upstream.
func update(ctx context.Context, path string) (Action, string, error) {
	if err := git.Fetch(ctx, path); err != nil {
		return ActionFailed, "", err
	}
	if git.IsDirty(ctx, path) {
		return ActionSkipped, "uncommitted changes", nil
	}
	if _, err := git.GetUpstream(ctx, path); err != nil {
		return ActionFetched, "no upstream", nil
	}

	_, behind, err := git.AheadBehind(ctx, path)
	if err == nil && behind == 0 {
		return ActionUpToDate, "", nil
	}
	if err := git.PullFastForward(ctx, path); err != nil {
		return ActionFailed, "", err
	}
	return ActionPulled, "", nil
}

// EnsureAll ensures repos with at most jobs running at once. Results keep
// the order of repos; a failing repo is recorded in its result and does
// not stop the others. done, if set, is called after each repo finishes.
func EnsureAll(ctx context.Context, repos []Repo, opts EnsureOptions, jobs int, done func(EnsureResult)) []EnsureResult {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]EnsureResult, len(repos))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(jobs)

	for i, repo := range repos {
		g.Go(func() error {
			res, err := EnsureRepo(ctx, repo, opts)
			if err != nil {
				res.Action = ActionFailed
				res.Err = err
			}
			results[i] = res
			if done != nil {
				mu.Lock()
				done(res)
				mu.Unlock()
			}
			return nil // failures are per repo
		})
	}

	_ = g.Wait() // always nil
	return results
}

// Failed returns the results that carry an error.
func Failed(results []EnsureResult) []EnsureResult {
	var failed []EnsureResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// PruneRegistry drops registry entries whose checkout no longer exists and
// returns them.
func PruneRegistry(path string) ([]registry.Entry, error) {
	var pruned []registry.Entry
	err := registry.Update(path, func(reg *registry.Registry) error {
		pruned = reg.Stale()
		for _, e := range pruned {
			if err := reg.Remove(e.Slug); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prune registry: %w", err)
	}
	return pruned, nil
}
