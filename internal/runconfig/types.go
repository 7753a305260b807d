// Package runconfig builds the frozen RunConfig value consumed by the
// dupefinder pipeline, merging compiled-in defaults, an optional key=value
// configuration file, and CLI flags -- the same three-layer precedence the
// teacher's internal/config package used for defaults -> TOML file -> Cobra
// flags, implemented here with koanf instead of a hand-rolled merge.
package runconfig

import "time"

// Config is the effective configuration after merging defaults, the
// configuration file, and CLI flags. It is frozen once the scan begins --
// nothing downstream of runctl.Controller.Run mutates it.
type Config struct {
	// Roots are the directories to scan (path=P, repeatable).
	Roots []string

	// OutputDir is where reports and the audit log are written.
	OutputDir string

	// Excludes are canonical paths pruned without descent.
	Excludes []string

	// ExcludeListFile is a gitignore-syntax file of additional exclude
	// patterns.
	ExcludeListFile string

	// MinSize and MaxSize bound candidate file size in bytes. MaxSize of 0
	// means unbounded.
	MinSize uint64
	MaxSize uint64

	// Patterns are basename globs a file must match to be a candidate. An
	// empty list means all basenames pass.
	Patterns []string

	// MaxDepth caps traversal depth below each root. 0 means unbounded.
	MaxDepth int

	// FollowSymlinks controls whether symlinked directories are descended.
	FollowSymlinks bool

	// IncludeHidden controls whether dot-prefixed entries are considered.
	IncludeHidden bool

	// IncludeEmpty controls whether zero-byte files are candidates.
	IncludeEmpty bool

	// Fast selects the fast (prefix) fingerprint mode instead of strong.
	Fast bool

	// Verify forces byte-level verification before any destructive action,
	// even in strong mode.
	Verify bool

	// Fuzzy enables the pluggable similarity provider instead of exact
	// digest equality.
	Fuzzy bool

	// Threshold is the similarity provider's acceptance threshold in
	// [0, 1], used only when Fuzzy is set.
	Threshold float64

	// StrongBits selects the strong-mode digest width: 128, 256, or 512.
	StrongBits int

	// Action selects the resolution action applied to non-survivors.
	Action ActionMode

	// Interactive enables the per-target prompt loop.
	Interactive bool

	// DryRun traverses every branch up to but not including the mutating
	// step.
	DryRun bool

	// QuarantineDir is required when Action == ActionModeQuarantine.
	QuarantineDir string

	// KeepNewest, KeepOldest, KeepPath, SmartDelete select the keeper
	// selector's rule cascade (spec.md C5). At most one of
	// KeepNewest/KeepOldest/SmartDelete should be set; KeepPath always
	// takes priority when it uniquely matches.
	KeepNewest bool
	KeepOldest bool
	KeepPath   string
	SmartDelete bool

	// LocationPriority maps a path-prefix to a priority score (lower wins)
	// for the smart-select rule. The flat key=value config file has no
	// table syntax to carry this. A named profile's [profile.NAME.priority]
	// table fills it only through ApplyProfile (see profile.go); Load and
	// the CLI's ApplyProfileToFlagValues path leave it empty.
	LocationPriority map[string]int

	// Threads is the fingerprinter worker pool size; 0 means "logical core
	// count".
	Threads int

	// CacheFile is the bbolt fingerprint cache path; empty disables the
	// cache.
	CacheFile string

	// SkipSystem / ForceSystem toggle the safety gate's system-root check.
	SkipSystem  bool
	ForceSystem bool

	// BackupDir, when set, is the pre-action backup root.
	BackupDir string

	// CSVFile, JSONFile, HTMLFile, EmailAddr, LogFile select report/audit
	// outputs.
	CSVFile   string
	JSONFile  string
	HTMLFile  string
	EmailAddr string
	LogFile   string

	// Verbose / Quiet select controller verbosity.
	Verbose bool
	Quiet   bool

	// Resume re-enters at the keep-select stage from a prior ResumePoint.
	Resume bool

	// ResumeFile is where the controller persists a ResumePoint if a run is
	// cancelled after grouping, and where `dupefinder resume` reads one
	// from. Derived from OutputDir; deleted on clean completion.
	ResumeFile string

	// FileTimeout bounds a single file's hashing time.
	FileTimeout time.Duration

	// CacheRetention is the window beyond which cache rows may be evicted
	// at open.
	CacheRetention time.Duration

	// There is no setting for a non-interactive system-root override: the
	// run controller honours ForceSystem only when Interactive is also set,
	// so without --interactive targets under system roots are still refused.
}

// ActionMode is the resolution action applied to every non-survivor.
type ActionMode string

const (
	ActionModeDelete     ActionMode = "delete"
	ActionModeTrash      ActionMode = "trash"
	ActionModeHardlink   ActionMode = "hardlink"
	ActionModeQuarantine ActionMode = "quarantine"
)
