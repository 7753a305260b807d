package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morroware/DupeFInder/internal/runconfig"
)

// configCmd is the parent command for configuration-related subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration inspection commands",
	Long: `Configuration inspection commands for dupefinder.

  show  Print the fully resolved configuration (defaults + config file +
        profile + CLI flags merged)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the fully resolved configuration",
	Long: `Merges compiled-in defaults, the optional --config key=value file, any
--profile, and every CLI flag exactly as a real run would, and prints the
result -- useful for diagnosing unexpected configuration behavior without
performing a scan.`,
	RunE: runConfigShow,
}

func init() {
	configShowCmd.Flags().Bool("json", false, "output as structured JSON")
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fv := GlobalFlags()

	if err := runconfig.ApplyProfileToFlagValues(cmd, fv); err != nil {
		return err
	}

	cfg, err := runconfig.Load(cmd, fv)
	if err != nil {
		return fmt.Errorf("building resolved config: %w", err)
	}

	out := cmd.OutOrStdout()

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Fprintf(out, "roots:            %v\n", cfg.Roots)
	fmt.Fprintf(out, "output dir:       %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "excludes:         %v\n", cfg.Excludes)
	fmt.Fprintf(out, "size window:      [%d, %d]\n", cfg.MinSize, cfg.MaxSize)
	fmt.Fprintf(out, "patterns:         %v\n", cfg.Patterns)
	fmt.Fprintf(out, "max depth:        %d\n", cfg.MaxDepth)
	fmt.Fprintf(out, "fast/verify:      %v/%v\n", cfg.Fast, cfg.Verify)
	fmt.Fprintf(out, "fuzzy/threshold:  %v/%v\n", cfg.Fuzzy, cfg.Threshold)
	fmt.Fprintf(out, "strong bits:      %d\n", cfg.StrongBits)
	fmt.Fprintf(out, "action:           %s\n", cfg.Action)
	fmt.Fprintf(out, "keep strategy:    newest=%v oldest=%v path=%q smart=%v\n", cfg.KeepNewest, cfg.KeepOldest, cfg.KeepPath, cfg.SmartDelete)
	fmt.Fprintf(out, "threads:          %d\n", cfg.Threads)
	fmt.Fprintf(out, "cache file:       %s\n", cfg.CacheFile)
	fmt.Fprintf(out, "skip/force sys:   %v/%v\n", cfg.SkipSystem, cfg.ForceSystem)
	fmt.Fprintf(out, "backup dir:       %s\n", cfg.BackupDir)
	fmt.Fprintf(out, "reports:          csv=%q json=%q html=%q email=%q\n", cfg.CSVFile, cfg.JSONFile, cfg.HTMLFile, cfg.EmailAddr)
	fmt.Fprintf(out, "resume file:      %s\n", cfg.ResumeFile)
	return nil
}
