package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/mgit/internal/git"
	"github.com/raphi011/mgit/internal/registry"
	"github.com/raphi011/mgit/internal/ui/static"
	"github.com/raphi011/mgit/internal/ui/styles"
)

// RepoStatus is the state of one managed repo on disk.
type RepoStatus struct {
	Repo        Repo
	Present     bool
	Branch      string
	Dirty       bool
	HasUpstream bool
	Ahead       int
	Behind      int
	SyncedAt    time.Time // zero if never ensured
	Err         error
}

// Status inspects every repo in parallel. Results keep the order of repos.
// reg may be nil, in which case SyncedAt stays zero.
func Status(ctx context.Context, repos []Repo, reg *registry.Registry) []RepoStatus {
	statuses := make([]RepoStatus, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent git operations

	for i, repo := range repos {
		g.Go(func() error {
			statuses[i] = repoStatus(ctx, repo, reg)
			return nil // errors are per repo
		})
	}

	_ = g.Wait()
	return statuses
}

func repoStatus(ctx context.Context, repo Repo, reg *registry.Registry) RepoStatus {
	st := RepoStatus{Repo: repo}
	if reg != nil {
		if e, err := reg.Find(repo.Slug()); err == nil {
			st.SyncedAt = e.SyncedAt
		}
	}

	if _, err := os.Stat(repo.Path); err != nil {
		return st
	}
	st.Present = true
	if !git.IsRepo(repo.Path) {
		st.Err = ErrNotGitRepo
		return st
	}

	branch, err := git.GetCurrentBranch(ctx, repo.Path)
	if err != nil {
		st.Err = err
		return st
	}
	st.Branch = branch
	st.Dirty = git.IsDirty(ctx, repo.Path)

	if ahead, behind, err := git.AheadBehind(ctx, repo.Path); err == nil {
		st.HasUpstream = true
		st.Ahead, st.Behind = ahead, behind
	}
	return st
}

// State is the STATE column.
func (s RepoStatus) State() string {
	switch {
	case !s.Present:
		return "missing"
	case s.Err != nil:
		return "error"
	case s.Dirty:
		return "dirty"
	default:
		return "clean"
	}
}

// Sync is the SYNC column.
func (s RepoStatus) Sync() string {
	switch {
	case !s.Present || s.Err != nil:
		return "-"
	case !s.HasUpstream:
		return "no upstream"
	case s.Ahead == 0 && s.Behind == 0:
		return "in sync"
	case s.Behind == 0:
		return fmt.Sprintf("↑%d", s.Ahead)
	case s.Ahead == 0:
		return fmt.Sprintf("↓%d", s.Behind)
	default:
		return fmt.Sprintf("↑%d ↓%d", s.Ahead, s.Behind)
	}
}

// RenderStatus writes the status table. now anchors the LAST SYNC column.
func RenderStatus(w io.Writer, statuses []RepoStatus, now time.Time) {
	if len(statuses) == 0 {
		fmt.Fprintln(w, "No managed repos. Add [[repos]] entries to your config.")
		return
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		branch := s.Branch
		if branch == "" {
			branch = "-"
		}
		lastSync := "never"
		if !s.SyncedAt.IsZero() {
			lastSync = humanize.RelTime(s.SyncedAt, now, "ago", "from now")
		}
		rows = append(rows, []string{s.Repo.Slug(), branch, stateStyle(s).Render(s.State()), s.Sync(), lastSync})
	}

	fmt.Fprint(w, static.RenderTable([]string{"REPO", "BRANCH", "STATE", "SYNC", "LAST SYNC"}, rows))
}

func stateStyle(s RepoStatus) lipgloss.Style {
	switch s.State() {
	case "clean":
		return styles.SuccessStyle
	case "dirty":
		return styles.WarningStyle
	default:
		return styles.ErrorStyle
	}
}
