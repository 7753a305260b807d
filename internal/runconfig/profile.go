package runconfig

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/morroware/DupeFInder/internal/runerr"
)

// ProfileFile is the top-level shape of a profiles TOML document (spec.md
// section 11's supplemented "named profile" feature), mirroring the
// teacher's config.Config/config.Profile split between a file-level map of
// named profiles and one profile's settings.
type ProfileFile struct {
	Profile map[string]*Profile `toml:"profile"`
}

// Profile holds the subset of Config fields a named profile may override.
// Zero values are "unset" and are filled from the parent named in Extends,
// then left as Config's compiled-in default if still unset.
type Profile struct {
	Extends *string `toml:"extends"`

	Paths    []string `toml:"path"`
	Excludes []string `toml:"exclude"`
	Patterns []string `toml:"pattern"`
	MinSize  string   `toml:"min_size"`
	MaxSize  string   `toml:"max_size"`

	Fast       bool    `toml:"fast"`
	Verify     bool    `toml:"verify"`
	Fuzzy      bool    `toml:"fuzzy"`
	Threshold  float64 `toml:"threshold"`
	StrongBits int     `toml:"strong_bits"`

	Action        string `toml:"action"`
	QuarantineDir string `toml:"quarantine_dir"`

	KeepNewest  bool   `toml:"keep_newest"`
	KeepOldest  bool   `toml:"keep_oldest"`
	KeepPath    string `toml:"keep_path"`
	SmartDelete bool   `toml:"smart_delete"`

	// Priority maps a path prefix to a smart-select priority score; the
	// flat key=value config file has no equivalent.
	Priority map[string]int `toml:"priority"`

	Threads   int    `toml:"threads"`
	CacheFile string `toml:"cache_file"`
	BackupDir string `toml:"backup_dir"`
}

// LoadProfiles reads a profiles TOML document at path and resolves the
// Extends chain for every profile it declares, mirroring the teacher's
// LoadFromFile + warnUndecodedKeys pattern.
func LoadProfiles(path string) (map[string]*Profile, error) {
	var file ProfileFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, runerr.Wrap(runerr.CodeConfigInvalid, fmt.Sprintf("parse profiles file %s", path), err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slog.Warn("unknown profile keys will be ignored", "source", path, "keys", strings.Join(keys, ", "))
	}

	resolved := make(map[string]*Profile, len(file.Profile))
	for name := range file.Profile {
		p, err := resolveProfile(file.Profile, name, nil)
		if err != nil {
			return nil, err
		}
		resolved[name] = p
	}
	return resolved, nil
}

// resolveProfile walks the Extends chain for name, detecting cycles via the
// visiting set, and returns a Profile with every unset field filled in from
// its ancestors (child values always win).
func resolveProfile(all map[string]*Profile, name string, visiting map[string]bool) (*Profile, error) {
	p, ok := all[name]
	if !ok {
		return nil, runerr.New(runerr.CodeConfigInvalid, fmt.Sprintf("profile %q not found", name))
	}
	if p.Extends == nil {
		return p, nil
	}

	if visiting == nil {
		visiting = map[string]bool{}
	}
	if visiting[name] {
		return nil, runerr.New(runerr.CodeConfigInvalid, fmt.Sprintf("profile %q has a circular extends chain", name))
	}
	visiting[name] = true

	parent, err := resolveProfile(all, *p.Extends, visiting)
	if err != nil {
		return nil, err
	}

	return mergeProfile(parent, p), nil
}

// mergeProfile produces a new Profile where every zero-valued field of child
// is filled from parent; non-zero child fields always win.
func mergeProfile(parent, child *Profile) *Profile {
	merged := *child

	if len(merged.Paths) == 0 {
		merged.Paths = parent.Paths
	}
	if len(merged.Excludes) == 0 {
		merged.Excludes = parent.Excludes
	}
	if len(merged.Patterns) == 0 {
		merged.Patterns = parent.Patterns
	}
	if merged.MinSize == "" {
		merged.MinSize = parent.MinSize
	}
	if merged.MaxSize == "" {
		merged.MaxSize = parent.MaxSize
	}
	if merged.Threshold == 0 {
		merged.Threshold = parent.Threshold
	}
	if merged.StrongBits == 0 {
		merged.StrongBits = parent.StrongBits
	}
	if merged.Action == "" {
		merged.Action = parent.Action
	}
	if merged.QuarantineDir == "" {
		merged.QuarantineDir = parent.QuarantineDir
	}
	if merged.KeepPath == "" {
		merged.KeepPath = parent.KeepPath
	}
	if merged.Priority == nil {
		merged.Priority = parent.Priority
	}
	if merged.Threads == 0 {
		merged.Threads = parent.Threads
	}
	if merged.CacheFile == "" {
		merged.CacheFile = parent.CacheFile
	}
	if merged.BackupDir == "" {
		merged.BackupDir = parent.BackupDir
	}
	merged.Fast = merged.Fast || parent.Fast
	merged.Verify = merged.Verify || parent.Verify
	merged.Fuzzy = merged.Fuzzy || parent.Fuzzy
	merged.KeepNewest = merged.KeepNewest || parent.KeepNewest
	merged.KeepOldest = merged.KeepOldest || parent.KeepOldest
	merged.SmartDelete = merged.SmartDelete || parent.SmartDelete

	return &merged
}

// ApplyProfile overlays a resolved Profile's non-zero fields onto cfg,
// treated as sitting between the compiled-in defaults and the config-file /
// CLI-flag layers: a profile sets the baseline for a named class of run
// (e.g. "photos", "downloads"), and an explicit flag still overrides it.
func ApplyProfile(cfg *Config, p *Profile) error {
	if len(p.Paths) > 0 {
		cfg.Roots = p.Paths
	}
	if len(p.Excludes) > 0 {
		cfg.Excludes = p.Excludes
	}
	if len(p.Patterns) > 0 {
		cfg.Patterns = p.Patterns
	}
	if p.MinSize != "" {
		size, err := ParseSize(p.MinSize)
		if err != nil {
			return runerr.Wrap(runerr.CodeConfigInvalid, "profile min_size", err)
		}
		cfg.MinSize = size
	}
	if p.MaxSize != "" {
		size, err := ParseSize(p.MaxSize)
		if err != nil {
			return runerr.Wrap(runerr.CodeConfigInvalid, "profile max_size", err)
		}
		cfg.MaxSize = size
	}

	cfg.Fast = cfg.Fast || p.Fast
	cfg.Verify = cfg.Verify || p.Verify
	cfg.Fuzzy = cfg.Fuzzy || p.Fuzzy
	if p.Threshold != 0 {
		cfg.Threshold = p.Threshold
	}
	if p.StrongBits != 0 {
		cfg.StrongBits = p.StrongBits
	}

	if p.Action != "" {
		cfg.Action = ActionMode(p.Action)
	}
	if p.QuarantineDir != "" {
		cfg.QuarantineDir = p.QuarantineDir
	}

	cfg.KeepNewest = cfg.KeepNewest || p.KeepNewest
	cfg.KeepOldest = cfg.KeepOldest || p.KeepOldest
	cfg.SmartDelete = cfg.SmartDelete || p.SmartDelete
	if p.KeepPath != "" {
		cfg.KeepPath = p.KeepPath
	}
	if len(p.Priority) > 0 {
		if cfg.LocationPriority == nil {
			cfg.LocationPriority = map[string]int{}
		}
		for prefix, score := range p.Priority {
			cfg.LocationPriority[prefix] = score
		}
	}

	if p.Threads != 0 {
		cfg.Threads = p.Threads
	}
	if p.CacheFile != "" {
		cfg.CacheFile = p.CacheFile
	}
	if p.BackupDir != "" {
		cfg.BackupDir = p.BackupDir
	}

	return nil
}

// ApplyProfileToFlagValues resolves fv.Profile from fv.ProfileFile and
// overlays its settings onto fv, but only for flags the user did not
// explicitly pass on the command line (cmd.Flags().Changed), so an explicit
// flag always beats the profile regardless of flag registration order. Since
// BindFlags binds fv's fields directly to the underlying pflag.Value, this
// mutation is visible to Load's later posflag.Provider pass without any
// further wiring. A no-op when fv.Profile is empty.
func ApplyProfileToFlagValues(cmd *cobra.Command, fv *FlagValues) error {
	if fv.Profile == "" {
		return nil
	}

	profiles, err := LoadProfiles(fv.ProfileFile)
	if err != nil {
		return err
	}
	p, ok := profiles[fv.Profile]
	if !ok {
		return runerr.New(runerr.CodeConfigInvalid, fmt.Sprintf("profile %q not found in %s", fv.Profile, fv.ProfileFile))
	}

	changed := cmd.Flags().Changed

	if !changed("path") && len(p.Paths) > 0 {
		fv.Paths = p.Paths
	}
	if !changed("exclude") && len(p.Excludes) > 0 {
		fv.Excludes = p.Excludes
	}
	if !changed("pattern") && len(p.Patterns) > 0 {
		fv.Patterns = p.Patterns
	}
	if !changed("min-size") && p.MinSize != "" {
		fv.MinSizeRaw = p.MinSize
	}
	if !changed("max-size") && p.MaxSize != "" {
		fv.MaxSizeRaw = p.MaxSize
	}
	if !changed("fast") && p.Fast {
		fv.Fast = true
	}
	if !changed("verify") && p.Verify {
		fv.Verify = true
	}
	if !changed("fuzzy") && p.Fuzzy {
		fv.Fuzzy = true
	}
	if !changed("threshold") && p.Threshold != 0 {
		fv.Threshold = p.Threshold
	}
	if !changed("sha256") && p.StrongBits == 256 {
		fv.SHA256 = true
	}
	if !changed("sha512") && p.StrongBits == 512 {
		fv.SHA512 = true
	}
	if !changed("quarantine") && p.Action == string(ActionModeQuarantine) && p.QuarantineDir != "" {
		fv.Quarantine = p.QuarantineDir
	}
	if !changed("trash") && p.Action == string(ActionModeTrash) {
		fv.Trash = true
	}
	if !changed("hardlink") && p.Action == string(ActionModeHardlink) {
		fv.Hardlink = true
	}
	if !changed("delete") && p.Action == string(ActionModeDelete) {
		fv.Delete = true
	}
	if !changed("keep-newest") && p.KeepNewest {
		fv.KeepNewest = true
	}
	if !changed("keep-oldest") && p.KeepOldest {
		fv.KeepOldest = true
	}
	if !changed("smart-delete") && p.SmartDelete {
		fv.SmartDelete = true
	}
	if !changed("keep-path") && p.KeepPath != "" {
		fv.KeepPath = p.KeepPath
	}
	if !changed("threads") && p.Threads != 0 {
		fv.Threads = p.Threads
	}
	if !changed("cache") && p.CacheFile != "" {
		fv.Cache = p.CacheFile
	}
	if !changed("backup") && p.BackupDir != "" {
		fv.Backup = p.BackupDir
	}

	return nil
}
