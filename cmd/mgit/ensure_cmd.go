package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/mgit/internal/git"
	"github.com/raphi011/mgit/internal/log"
	"github.com/raphi011/mgit/internal/output"
	"github.com/raphi011/mgit/internal/registry"
	"github.com/raphi011/mgit/internal/ui/progress"
	"github.com/raphi011/mgit/internal/ui/styles"
	"github.com/raphi011/mgit/internal/workspace"
)

func newEnsureCmd() *cobra.Command {
	var (
		jobs     int
		noVSCode bool
		prune    bool
	)

	cmd := &cobra.Command{
		Use:     "ensure [FILTER...]",
		Short:   "Clone or update managed repos",
		GroupID: GroupCore,
		Long: `Clone missing managed repos and fast-forward existing ones.

Safe to run as often as you like: repos with uncommitted changes are only
fetched, and a VS Code workspace file is only created when none exists.
FILTER fuzzy-matches host/owner/name; without it every repo is ensured.
Prints the status report when done.`,
		Example: `  mgit ensure                 # Ensure all managed repos
  mgit ensure sql-aide        # Only repos matching "sql-aide"
  mgit ensure --jobs 8        # More repos in parallel
  mgit ensure --prune         # Also forget deleted checkouts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := git.CheckGit(); err != nil {
				return err
			}
			l := log.FromContext(ctx)

			wc, err := workspaceContext()
			if err != nil {
				return err
			}
			repos, err := managedRepos(wc, args)
			if err != nil {
				return err
			}
			regPath, err := registry.Path()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("jobs") {
				jobs = cfg.Ensure.Jobs
			}
			opts := workspace.EnsureOptions{
				VSCodeWorkspace: cfg.Ensure.VSCodeWorkspace && !noVSCode,
				DepsFolders:     cfg.Ensure.DepsFolders,
				Matchers:        workspace.MatchersFor(cfg.Ensure.WorkspaceMatcher),
				Registry:        regPath,
			}

			var sp *progress.Spinner
			if !quiet && !verbose && progress.Enabled(os.Stderr) {
				sp = progress.NewSpinner(os.Stderr, fmt.Sprintf("Ensuring %d repos...", len(repos)))
				sp.Start()
			}

			finished := 0
			results := workspace.EnsureAll(ctx, repos, opts, jobs, func(r workspace.EnsureResult) {
				finished++
				if sp != nil {
					sp.UpdateMessage(fmt.Sprintf("[%d/%d] %s %s", finished, len(repos), r.Repo.Slug(), r.Action))
				}
			})
			if sp != nil {
				sp.Stop()
			}

			out := output.FromContext(ctx)
			printEnsureResults(out, results, styles.CurrentSymbols())

			if prune {
				pruned, err := workspace.PruneRegistry(regPath)
				if err != nil {
					return err
				}
				for _, e := range pruned {
					l.Printf("Pruned %s (%s no longer exists)\n", e.Slug, e.Path)
				}
			}

			reg, err := registry.Load()
			if err != nil {
				l.Printf("Warning: %v\n", err)
			}
			out.Println()
			workspace.RenderStatus(out.Writer(), workspace.Status(ctx, repos, reg), time.Now())

			if failed := workspace.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d repos failed", len(failed), len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Repos to sync in parallel (default ensure.jobs)")
	cmd.Flags().BoolVar(&noVSCode, "no-vscode", false, "Don't scaffold VS Code workspace files")
	cmd.Flags().BoolVar(&prune, "prune", false, "Forget synced repos whose directory is gone")

	return cmd
}

// printEnsureResults writes one line per repo to primary output, so --quiet
// keeps them.
func printEnsureResults(out *output.Printer, results []workspace.EnsureResult, sym styles.Symbols) {
	for _, r := range results {
		out.Println(formatEnsureResult(r, sym))
	}
}

// formatEnsureResult renders one line of the ensure summary.
func formatEnsureResult(r workspace.EnsureResult, sym styles.Symbols) string {
	var b strings.Builder
	switch {
	case r.Err != nil:
		fmt.Fprintf(&b, "%s %s: %s", sym.Warn, r.Repo.Slug(), styles.ErrorStyle.Render(r.Err.Error()))
		return b.String()
	case r.Action == workspace.ActionSkipped || r.Action == workspace.ActionFetched:
		fmt.Fprintf(&b, "%s %s %s (%s)", sym.Suggest, r.Repo.Slug(), styles.WarningStyle.Render(string(r.Action)), r.Reason)
	default:
		fmt.Fprintf(&b, "%s %s %s", sym.OK, r.Repo.Slug(), styles.SuccessStyle.Render(string(r.Action)))
	}
	if r.WorkspaceFile != "" {
		fmt.Fprintf(&b, ", created %s", filepath.Base(r.WorkspaceFile))
	}
	if n := len(r.CreatedFolders); n > 0 {
		fmt.Fprintf(&b, ", created %d folder(s)", n)
	}
	return b.String()
}
