package main

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/mgit/internal/checks"
	"github.com/raphi011/mgit/internal/doctor"
	"github.com/raphi011/mgit/internal/log"
	"github.com/raphi011/mgit/internal/output"
	"github.com/raphi011/mgit/internal/probe"
	"github.com/raphi011/mgit/internal/registry"
)

func newDoctorCmd() *cobra.Command {
	var (
		strict     bool
		copyReport bool
		only       []string
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check that the environment is ready",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Check build dependencies, forge CLIs and the managed workspace.

Each check prints one line:
  ✓  ok, nothing to do
  →  suggestion, optional
  ✗  warning, should be corrected (printed to stderr)

Exits 0 even when warnings were printed, unless --strict or
doctor.strict is set.`,
		Example: `  mgit doctor                 # Full checkup
  mgit doctor --only forge    # Only categories matching "forge"
  mgit doctor --strict        # Exit 1 on any warning (CI)
  mgit doctor --copy          # Also copy the report to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			wc, err := workspaceContext()
			if err != nil {
				return err
			}
			reg, regErr := registry.Load()

			env := checks.WorkspaceEnv{
				Config:      cfg,
				ConfigErr:   cfgErr,
				Context:     wc,
				Registry:    reg,
				RegistryErr: regErr,
			}
			p := probe.Shell{Timeout: cfg.Doctor.ProbeTimeout.Duration}

			cats, err := selectCategories(checks.All(p, env), only)
			if err != nil {
				return err
			}

			out := output.FromContext(ctx).Writer()
			warnOut := output.Styled(os.Stderr, os.Environ())
			var report bytes.Buffer
			if copyReport {
				out = io.MultiWriter(out, &report)
				warnOut = io.MultiWriter(warnOut, &report)
			}

			sum, err := doctor.New(cats, doctor.WithOutput(out), doctor.WithWarnOutput(warnOut)).Run(ctx)
			if err != nil {
				return err
			}

			if copyReport {
				if err := clipboard.WriteAll(ansi.Strip(report.String())); err != nil {
					l.Printf("Warning: failed to copy report: %v\n", err)
				} else {
					l.Println("Report copied to clipboard")
				}
			}

			l.Debug("doctor finished", "ok", sum.OK, "warn", sum.Warn, "suggest", sum.Suggest)

			if (strict || cfg.Doctor.Strict) && sum.HasWarnings() {
				return &exitError{code: 1, msg: fmt.Sprintf("%d warning(s) reported", sum.Warn)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 when any warning is reported")
	cmd.Flags().BoolVar(&copyReport, "copy", false, "Copy the report to the clipboard")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only run categories fuzzy-matching these labels")

	cmd.RegisterFlagCompletionFunc("only", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var labels []string
		for c := range checks.All(probe.Shell{}, checks.WorkspaceEnv{}) {
			labels = append(labels, c.Label)
		}
		return labels, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// selectCategories keeps the categories whose label fuzzy-matches any pattern.
// Listing labels does not run any diagnostic.
func selectCategories(cats iter.Seq[doctor.Category], patterns []string) (iter.Seq[doctor.Category], error) {
	if len(patterns) == 0 {
		return cats, nil
	}

	var labels []string
	for c := range cats {
		labels = append(labels, c.Label)
	}

	keep := make(map[string]bool)
	for _, p := range patterns {
		matches := fuzzy.Find(p, labels)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no check category matches %q (available: %s)", p, strings.Join(labels, ", "))
		}
		for _, m := range matches {
			keep[m.Str] = true
		}
	}

	return doctor.Filter(cats, func(c doctor.Category) bool { return keep[c.Label] }), nil
}
