package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/mgit/internal/config"
	"github.com/raphi011/mgit/internal/log"
	"github.com/raphi011/mgit/internal/output"
	"github.com/raphi011/mgit/internal/ui/styles"
	"github.com/raphi011/mgit/internal/workspace"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	rootFlag string

	// Shared state injected into commands
	cfg    config.Config
	cfgErr error
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mgit",
	Short: "Managed git workspaces with an environment checkup",
	Long: `mgit keeps a declared set of git repos cloned and up to date under a
workspace root, and checks that your machine is ready to work on them.

Repos are declared in ~/.config/mgit/config.toml and laid out as
<root>/<host>/<owner>/<name>.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed now, so the logger can honour them
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)

		// doctor reports config problems itself
		if cfgErr != nil && cmd.Name() != "doctor" && cmd.Name() != "init" {
			return cfgErr
		}
		return nil
	},
}

// exitError ends the process with code after printing msg, without the help hint.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cfg, cfgErr = config.Load()
	styles.Init(cfg.Theme)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))
	ctx = output.WithPrinter(ctx, output.Styled(os.Stdout, os.Environ()))
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'mgit -h' for help")
		os.Exit(1)
	}
}

// workspaceContext resolves the workspace root from --root, $MGIT_ROOT and config.
func workspaceContext() (workspace.Context, error) {
	root, err := cfg.ResolveRoot(rootFlag)
	if err != nil {
		return workspace.Context{}, err
	}
	return workspace.NewContext(root)
}

// managedRepos returns the configured repos matching filters (all when empty).
func managedRepos(wc workspace.Context, filters []string) ([]workspace.Repo, error) {
	repos, err := workspace.ParseRepos(cfg.RepoURLs(), wc)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("no managed repos configured, add [[repos]] entries to your config (mgit config init)")
	}
	filtered := workspace.FilterRepos(repos, filters)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no managed repo matches %v", filters)
	}
	return filtered, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Workspace root (default $MGIT_ROOT or workspace.root)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newEnsureCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConfigCmd())
}
