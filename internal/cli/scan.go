package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morroware/DupeFInder/internal/mail"
	"github.com/morroware/DupeFInder/internal/report"
	"github.com/morroware/DupeFInder/internal/runconfig"
	"github.com/morroware/DupeFInder/internal/runctl"
)

var scanCmd = &cobra.Command{
	Use:     "scan",
	Aliases: []string{"run"},
	Short:   "Scan root directories and resolve duplicate groups",
	Long: `Walks every --path root, fingerprints candidate files concurrently
with a persistent cache, groups byte-identical files, and applies the
configured resolution action to every group while keeping one survivor.

Running 'dupefinder' with no subcommand is equivalent to running
'dupefinder scan'.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()

	if err := runconfig.ApplyProfileToFlagValues(cmd, fv); err != nil {
		return err
	}

	cfg, err := runconfig.Load(cmd, fv)
	if err != nil {
		return err
	}

	var prompter runctl.Prompter
	if cfg.Interactive {
		prompter = NewStdinPrompter(os.Stdin, cmd.OutOrStdout())
	}

	reporters, closeReporters, err := buildReporters(cfg)
	if err != nil {
		return err
	}
	defer closeReporters()

	ctl := runctl.New(cfg, prompter, reporters...)
	summary, err := ctl.Run(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), runctl.FormatSummary(summary))
	return err
}

// buildReporters wires every configured output sink (CSV, JSON, email, and
// a live terminal progress display when the run is not --quiet) into the
// Reporter list the controller notifies, plus a closer that flushes/stops
// anything stateful.
func buildReporters(cfg *runconfig.Config) ([]runctl.Reporter, func(), error) {
	var reporters []runctl.Reporter
	var closers []func()

	if cfg.CSVFile != "" {
		r, err := report.NewCSVReporter(cfg.CSVFile)
		if err != nil {
			return nil, nil, err
		}
		reporters = append(reporters, r)
	}

	if cfg.JSONFile != "" {
		reporters = append(reporters, report.NewJSONReporter(cfg.JSONFile))
	}

	if cfg.HTMLFile != "" {
		reporters = append(reporters, report.NewHTMLReporter(cfg.HTMLFile))
	}

	if cfg.EmailAddr != "" {
		reporters = append(reporters, mail.New("", "", cfg.EmailAddr))
	}

	if !cfg.Quiet {
		pr := runctl.NewProgressReporter()
		reporters = append(reporters, pr)
		closers = append(closers, pr.Stop)
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return reporters, closeAll, nil
}
