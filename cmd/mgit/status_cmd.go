package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/mgit/internal/git"
	"github.com/raphi011/mgit/internal/log"
	"github.com/raphi011/mgit/internal/output"
	"github.com/raphi011/mgit/internal/registry"
	"github.com/raphi011/mgit/internal/workspace"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status [FILTER...]",
		Short:   "Show the state of managed repos",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Example: `  mgit status            # All managed repos
  mgit status opsfolio   # Only repos matching "opsfolio"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := git.CheckGit(); err != nil {
				return err
			}

			wc, err := workspaceContext()
			if err != nil {
				return err
			}
			repos, err := managedRepos(wc, args)
			if err != nil {
				return err
			}

			reg, err := registry.Load()
			if err != nil {
				log.FromContext(ctx).Printf("Warning: %v\n", err)
			}

			workspace.RenderStatus(output.FromContext(ctx).Writer(), workspace.Status(ctx, repos, reg), time.Now())
			return nil
		},
	}
}
