package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morroware/DupeFInder/internal/runconfig"
	"github.com/morroware/DupeFInder/internal/runctl"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a prior interrupted run at the keep-select stage",
	Long: `Re-enters the pipeline from a ResumePoint left by a run that was
interrupted after grouping, skipping the walk/fingerprint/group phases
entirely and continuing directly into select/gate/execute.`,
	RunE: runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()

	if err := runconfig.ApplyProfileToFlagValues(cmd, fv); err != nil {
		return err
	}

	cfg, err := runconfig.Load(cmd, fv)
	if err != nil {
		return err
	}

	groups, err := runctl.LoadResumePoint(cfg.ResumeFile)
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
	summary, err := ctl.ResumeFrom(cmd.Context(), groups)
	fmt.Fprintln(cmd.OutOrStdout(), runctl.FormatSummary(summary))
	return err
}
