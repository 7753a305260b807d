package runconfig

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// Load merges three layers of configuration into a frozen Config, in order
// of increasing precedence: compiled-in defaults, an optional --config
// key=value file, and CLI flags explicitly set on cmd. This is the same
// three-layer precedence the teacher's internal/config package enforced for
// defaults -> TOML file -> Cobra flags, reimplemented with koanf so each
// layer is a composable Provider instead of three hand-written merge
// functions.
func Load(cmd *cobra.Command, fv *FlagValues) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, runerr.Wrap(runerr.CodeConfigInvalid, "load compiled-in defaults", err)
	}

	if fv.ConfigFile != "" {
		raw, unknown, err := ParseKVFile(fv.ConfigFile)
		if err != nil {
			return nil, err
		}
		for _, key := range unknown {
			slog.Warn("unknown config file key will be ignored", "source", fv.ConfigFile, "key", key)
		}
		if err := k.Load(confmap.Provider(kvFileMap(raw), "."), nil); err != nil {
			return nil, runerr.Wrap(runerr.CodeConfigInvalid, "merge config file", err)
		}
	}

	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return nil, runerr.Wrap(runerr.CodeConfigInvalid, "merge CLI flags", err)
	}

	cfg := defaults()
	cfg.Roots = k.Strings("path")
	cfg.OutputDir = k.String("output")
	cfg.Excludes = k.Strings("exclude")
	cfg.ExcludeListFile = k.String("exclude-list")
	cfg.Patterns = k.Strings("pattern")
	cfg.MaxDepth = k.Int("level")
	cfg.FollowSymlinks = k.Bool("follow-symlinks")
	cfg.IncludeHidden = k.Bool("all")
	cfg.IncludeEmpty = k.Bool("empty")

	cfg.Fast = k.Bool("fast")
	cfg.Verify = k.Bool("verify")
	cfg.Fuzzy = k.Bool("fuzzy")
	cfg.Threshold = k.Float64("threshold")

	cfg.Interactive = k.Bool("interactive")
	cfg.DryRun = k.Bool("dry-run")

	cfg.KeepNewest = k.Bool("keep-newest")
	cfg.KeepOldest = k.Bool("keep-oldest")
	cfg.KeepPath = k.String("keep-path")
	cfg.SmartDelete = k.Bool("smart-delete")

	cfg.Threads = k.Int("threads")
	cfg.CacheFile = k.String("cache")

	cfg.SkipSystem = k.Bool("skip-system")
	cfg.ForceSystem = k.Bool("force-system")

	cfg.BackupDir = k.String("backup")
	cfg.CSVFile = k.String("csv")
	cfg.JSONFile = k.String("json")
	cfg.HTMLFile = k.String("html")
	cfg.EmailAddr = k.String("email")
	cfg.LogFile = k.String("log")

	cfg.Verbose = k.Bool("verbose")
	cfg.Quiet = k.Bool("quiet")
	cfg.Resume = k.Bool("resume")

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	cfg.ResumeFile = filepath.Join(outputDir, "dupefinder.resume.toml")

	minSize, err := ParseSize(stringOr(k.String("min-size"), "0"))
	if err != nil {
		return nil, runerr.Wrap(runerr.CodeConfigInvalid, "min-size", err)
	}
	cfg.MinSize = minSize

	if maxRaw := k.String("max-size"); maxRaw != "" {
		maxSize, err := ParseSize(maxRaw)
		if err != nil {
			return nil, runerr.Wrap(runerr.CodeConfigInvalid, "max-size", err)
		}
		cfg.MaxSize = maxSize
	}

	switch {
	case k.Bool("trash"):
		cfg.Action = ActionModeTrash
	case k.Bool("hardlink"):
		cfg.Action = ActionModeHardlink
	case k.String("quarantine") != "":
		cfg.Action = ActionModeQuarantine
		cfg.QuarantineDir = k.String("quarantine")
	case k.Bool("delete"):
		cfg.Action = ActionModeDelete
	}

	switch {
	case k.Bool("sha512"):
		cfg.StrongBits = 512
	case k.Bool("sha256"):
		cfg.StrongBits = 256
	}

	if err := validateMerged(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateMerged(cfg *Config) error {
	if len(cfg.Roots) == 0 {
		return runerr.New(runerr.CodeConfigInvalid, "at least one --path is required")
	}
	if cfg.Action == ActionModeQuarantine && cfg.QuarantineDir == "" {
		return runerr.New(runerr.CodeConfigInvalid, "--quarantine requires a destination directory")
	}
	if cfg.MaxSize != 0 && cfg.MaxSize < cfg.MinSize {
		return runerr.New(runerr.CodeConfigInvalid, "--max-size must be >= --min-size")
	}
	if cfg.StrongBits != 128 && cfg.StrongBits != 256 && cfg.StrongBits != 512 {
		return runerr.New(runerr.CodeConfigInvalid, fmt.Sprintf("invalid strong digest width: %d", cfg.StrongBits))
	}
	return nil
}

// defaultsMap renders the compiled-in defaults as a flat map so they can be
// loaded through the same confmap.Provider path as the file and flag layers.
func defaultsMap() map[string]interface{} {
	d := defaults()
	return map[string]interface{}{
		"level":      d.MaxDepth,
		"min-size":   "0",
		"threshold":  1.0,
		"threads":    d.Threads,
	}
}

// kvFileMap adapts ParseKVFile's map[string][]string output (repeatable
// keys) into the scalar-or-slice shape koanf's confmap.Provider expects:
// single-value keys collapse to a string, repeatable ones stay a []string.
func kvFileMap(raw map[string][]string) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for key, vals := range raw {
		switch key {
		case "path", "exclude", "pattern":
			out[key] = vals
		default:
			out[key] = strings.Join(vals, " ")
		}
	}
	return out
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
