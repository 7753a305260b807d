package runconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// FlagValues collects all parsed global flag values from the CLI, the
// direct analogue of the teacher's config.FlagValues -- populated by
// BindFlags and later merged into a frozen Config by Load.
type FlagValues struct {
	Paths          []string
	Output         string
	Excludes       []string
	MinSizeRaw     string
	MaxSizeRaw     string
	Patterns       []string
	Level          int
	FollowSymlinks bool
	All            bool
	Empty          bool

	Fast      bool
	Verify    bool
	Fuzzy     bool
	Threshold float64

	Delete      bool
	Interactive bool
	DryRun      bool
	Trash       bool
	Hardlink    bool
	Quarantine  string

	KeepNewest  bool
	KeepOldest  bool
	KeepPath    string
	SmartDelete bool

	Threads int
	Cache   string

	SHA256 bool
	SHA512 bool

	SkipSystem  bool
	ForceSystem bool

	Backup string
	CSV    string
	JSON   string
	HTML   string
	Email  string
	Log    string

	Verbose bool
	Quiet   bool

	Resume      bool
	ConfigFile  string
	ExcludeList string

	Profile     string
	ProfileFile string
}

// BindFlags registers every persistent flag named in spec.md section 6 on
// the given Cobra command and returns a FlagValues that will be populated
// once Cobra parses the command line, mirroring the teacher's
// config.BindFlags.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}
	pf := cmd.PersistentFlags()

	pf.StringArrayVar(&fv.Paths, "path", nil, "add root directory to scan (repeatable)")
	pf.StringVar(&fv.Output, "output", "", "reports and audit directory")
	pf.StringArrayVar(&fv.Excludes, "exclude", nil, "add exclusion path (repeatable)")
	pf.StringVar(&fv.MinSizeRaw, "min-size", "0", "minimum candidate size (accepts K, M, G, T suffixes)")
	pf.StringVar(&fv.MaxSizeRaw, "max-size", "", "maximum candidate size (accepts K, M, G, T suffixes)")
	pf.StringArrayVar(&fv.Patterns, "pattern", nil, "basename glob filter (repeatable)")
	pf.IntVar(&fv.Level, "level", 0, "maximum traversal depth (0 = unbounded)")
	pf.BoolVar(&fv.FollowSymlinks, "follow-symlinks", false, "follow symlinked directories")
	pf.BoolVar(&fv.All, "all", false, "include hidden files and directories")
	pf.BoolVar(&fv.Empty, "empty", false, "include zero-byte files")

	pf.BoolVar(&fv.Fast, "fast", false, "use fast (prefix) fingerprint mode")
	pf.BoolVar(&fv.Verify, "verify", false, "force byte-level verification before destructive actions")
	pf.BoolVar(&fv.Fuzzy, "fuzzy", false, "enable the pluggable similarity provider")
	pf.Float64Var(&fv.Threshold, "threshold", 1.0, "similarity acceptance threshold in [0,1] (fuzzy mode only)")

	pf.BoolVar(&fv.Delete, "delete", false, "resolution action: permanently delete non-survivors")
	pf.BoolVar(&fv.Interactive, "interactive", false, "prompt per target before acting")
	pf.BoolVar(&fv.DryRun, "dry-run", false, "record intended actions without mutating the filesystem")
	pf.BoolVar(&fv.Trash, "trash", false, "resolution action: send non-survivors to the platform trash")
	pf.BoolVar(&fv.Hardlink, "hardlink", false, "resolution action: replace non-survivors with a hardlink to the survivor")
	pf.StringVar(&fv.Quarantine, "quarantine", "", "resolution action: move non-survivors into this directory")

	pf.BoolVar(&fv.KeepNewest, "keep-newest", false, "keeper selector: prefer the member with the greatest mtime")
	pf.BoolVar(&fv.KeepOldest, "keep-oldest", false, "keeper selector: prefer the member with the least mtime")
	pf.StringVar(&fv.KeepPath, "keep-path", "", "keeper selector: prefer the member under this path prefix")
	pf.BoolVar(&fv.SmartDelete, "smart-delete", false, "keeper selector: score members against a location-priority table")

	pf.IntVar(&fv.Threads, "threads", 0, "fingerprinter worker pool size (0 = logical core count)")
	pf.StringVar(&fv.Cache, "cache", "", "fingerprint cache file path")

	pf.BoolVar(&fv.SHA256, "sha256", false, "strong mode: use a 256-bit digest")
	pf.BoolVar(&fv.SHA512, "sha512", false, "strong mode: use a 512-bit digest")

	pf.BoolVar(&fv.SkipSystem, "skip-system", false, "silently skip (rather than refuse) targets under system roots")
	pf.BoolVar(&fv.ForceSystem, "force-system", false, "allow destructive actions under system roots (only with --interactive, which confirms each target)")

	pf.StringVar(&fv.Backup, "backup", "", "pre-action backup root directory")
	pf.StringVar(&fv.CSV, "csv", "", "write a CSV report to this file")
	pf.StringVar(&fv.JSON, "json", "", "write a JSON report to this file")
	pf.StringVar(&fv.HTML, "html", "", "write an HTML report to this file")
	pf.StringVar(&fv.Email, "email", "", "email the report to this address")
	pf.StringVar(&fv.Log, "log", "", "audit log file path")

	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "print every skip with its reason code")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "print only fatal errors and the final summary")

	pf.BoolVar(&fv.Resume, "resume", false, "resume a prior interrupted run at the keep-select stage")
	pf.StringVar(&fv.ConfigFile, "config", "", "key=value configuration file")
	pf.StringVar(&fv.ExcludeList, "exclude-list", "", "gitignore-syntax file of additional exclusions")

	pf.StringVar(&fv.Profile, "profile", "", "named flag bundle to apply from --profile-file, before explicit flags")
	pf.StringVar(&fv.ProfileFile, "profile-file", ".dupefinder.toml", "TOML file holding named profiles")

	return fv
}

// Validate checks FlagValues for mutually-exclusive combinations and
// well-formed values, mirroring the structure of the teacher's
// config.ValidateFlags.
func (fv *FlagValues) Validate() error {
	if fv.Verbose && fv.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	actionCount := 0
	for _, b := range []bool{fv.Delete, fv.Trash, fv.Hardlink, fv.Quarantine != ""} {
		if b {
			actionCount++
		}
	}
	if actionCount > 1 {
		return fmt.Errorf("--delete, --trash, --hardlink, and --quarantine are mutually exclusive")
	}

	keepCount := 0
	for _, b := range []bool{fv.KeepNewest, fv.KeepOldest, fv.SmartDelete} {
		if b {
			keepCount++
		}
	}
	if keepCount > 1 {
		return fmt.Errorf("--keep-newest, --keep-oldest, and --smart-delete are mutually exclusive")
	}

	if fv.SHA256 && fv.SHA512 {
		return fmt.Errorf("--sha256 and --sha512 are mutually exclusive")
	}

	if fv.SkipSystem && fv.ForceSystem {
		return fmt.Errorf("--skip-system and --force-system are mutually exclusive")
	}

	if fv.Threshold < 0 || fv.Threshold > 1 {
		return fmt.Errorf("--threshold must be in [0, 1], got %v", fv.Threshold)
	}

	if _, err := ParseSize(fv.MinSizeRaw); err != nil {
		return fmt.Errorf("--min-size: %w", err)
	}
	if fv.MaxSizeRaw != "" {
		if _, err := ParseSize(fv.MaxSizeRaw); err != nil {
			return fmt.Errorf("--max-size: %w", err)
		}
	}

	return nil
}

// ParseSize parses a byte-count string accepting K, M, G, T suffixes with
// an optional trailing B (e.g. "10K", "10KB", "512"), per spec.md section
// 6. Adapted from the teacher's config.ParseSize, extended with G/T
// suffixes since the spec's size window explicitly names them.
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)
	upper = strings.TrimSuffix(upper, "B")

	var multiplier uint64 = 1
	var numPart string

	switch {
	case strings.HasSuffix(upper, "T"):
		multiplier = 1024 * 1024 * 1024 * 1024
		numPart = strings.TrimSuffix(upper, "T")
	case strings.HasSuffix(upper, "G"):
		multiplier = 1024 * 1024 * 1024
		numPart = strings.TrimSuffix(upper, "G")
	case strings.HasSuffix(upper, "M"):
		multiplier = 1024 * 1024
		numPart = strings.TrimSuffix(upper, "M")
	case strings.HasSuffix(upper, "K"):
		multiplier = 1024
		numPart = strings.TrimSuffix(upper, "K")
	default:
		numPart = upper
	}

	n, err := strconv.ParseUint(strings.TrimSpace(numPart), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	return n * multiplier, nil
}

// parseDuration is a small wrapper around time.ParseDuration. Nothing in
// this package calls it: FileTimeout and CacheRetention have no CLI flag or
// config-file key and always keep their compiled-in defaults.
func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
