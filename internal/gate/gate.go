// Package gate implements component C6, the safety gate every action must
// clear before it runs. Grounded on the other_examples onedrive-go
// SafetyChecker: a sequence of named invariant checks run against an
// action plan, each able to refuse the action with a specific reason code,
// and a statfs-style function pointer (here a ProcessProbe interface)
// injected so the open-files/mapped-library checks are unit-testable
// without real processes holding files open.
package gate

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// ProcessProbe answers "is this path currently open or mapped by a running
// process", a best-effort, platform-specific check. See procprobe_linux.go
// for the /proc-based implementation and procprobe_other.go for the
// always-clear fallback on platforms without /proc.
type ProcessProbe interface {
	OpenByProcess(path string) (pid int, open bool)
	MappedByProcess(path string) (pid int, mapped bool)
}

// SystemRoots lists path prefixes treated as operating-system-owned;
// targets under these are refused unless ForceSystem is set (SkipSystem
// still refuses them, with a "skipped" message).
var SystemRoots = []string{"/bin", "/sbin", "/usr", "/etc", "/boot", "/lib", "/lib64", "/System", "/Windows", "/Program Files"}

// NeverDeleteGlobs are basename globs that are never a valid deletion
// target regardless of other settings, matched with doublestar.
var NeverDeleteGlobs = []string{
	"*.lock", ".lock", "lost+found", "*.sock",
}

// CriticalExtensions flags files whose extension makes an automatic
// decision unusually risky (system libraries, databases, VM images).
var CriticalExtensions = map[string]bool{
	".dll": true, ".so": true, ".dylib": true, ".sys": true,
	".vmdk": true, ".vdi": true, ".qcow2": true, ".sqlite": true, ".db": true,
}

// Options configures the Gate.
type Options struct {
	SkipSystem  bool
	ForceSystem bool
	Probe       ProcessProbe
	Verify      bool // force byte verification even in strong mode
	Fast        bool
	Action      model.ActionKind // when ActionHardlink, Check enforces the same-device invariant
}

// Gate evaluates one resolution target (a non-survivor file in a
// model.DigestGroup) and reports whether it may proceed, along with the
// reason code if not.
type Gate struct {
	opts   Options
	logger *slog.Logger
}

// New builds a Gate. A nil Probe defaults to the platform implementation.
func New(opts Options) *Gate {
	if opts.Probe == nil {
		opts.Probe = defaultProbe{}
	}
	return &Gate{opts: opts, logger: slog.Default().With("component", "gate")}
}

// Decision is the result of evaluating one target.
type Decision struct {
	Allowed           bool
	Reason            *runerr.Error
	RequiresByteCheck bool // fast-mode matches always require this before destructive action
}

// Check runs every invariant against target, the candidate for removal,
// and survivor, the group's keeper. Checks run in a fixed order and the
// first refusal wins; later checks are skipped once one fails.
func (g *Gate) Check(target, survivor model.FileRecord) Decision {
	if d, refused := g.checkSystemRoot(target.Path); refused {
		return d
	}
	if d, refused := g.checkNeverDelete(target.Path); refused {
		return d
	}
	if d, refused := g.checkOwner(target.Path, survivor.Path); refused {
		return d
	}
	if d, refused := g.checkOpenOrMapped(target.Path); refused {
		return d
	}
	if d, refused := g.checkHardlinkDevice(target, survivor); refused {
		return d
	}

	return Decision{Allowed: true, RequiresByteCheck: g.opts.Fast || g.opts.Verify}
}

func (g *Gate) checkHardlinkDevice(target, survivor model.FileRecord) (Decision, bool) {
	if g.opts.Action != model.ActionHardlink {
		return Decision{}, false
	}
	if err := RequiresHardlinkSameDevice(target, survivor); err != nil {
		if re, ok := err.(*runerr.Error); ok {
			return Decision{Allowed: false, Reason: re}, true
		}
		return Decision{Allowed: false, Reason: runerr.Wrap(runerr.CodeGateCrossDevice, "hardlink device check", err)}, true
	}
	return Decision{}, false
}

func (g *Gate) checkSystemRoot(path string) (Decision, bool) {
	if g.opts.ForceSystem {
		return Decision{}, false
	}
	for _, root := range SystemRoots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			if g.opts.SkipSystem {
				g.logger.Debug("skipping system path", "path", path)
				return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateSystem, "under system root, skipped: "+path)}, true
			}
			return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateSystem, "refused: under system root "+root)}, true
		}
	}
	return Decision{}, false
}

func (g *Gate) checkNeverDelete(path string) (Decision, bool) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	for _, glob := range NeverDeleteGlobs {
		if ok, _ := doublestar.Match(glob, base); ok {
			return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateSystem, "matches never-delete pattern: "+glob)}, true
		}
	}
	if CriticalExtensions[ext] {
		return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateSystem, "critical extension: "+ext)}, true
	}
	return Decision{}, false
}

func (g *Gate) checkOwner(targetPath, survivorPath string) (Decision, bool) {
	tInfo, err := os.Stat(targetPath)
	if err != nil {
		return Decision{Allowed: false, Reason: runerr.Wrap(runerr.CodeGateOwner, "stat "+targetPath, err)}, true
	}
	sInfo, err := os.Stat(survivorPath)
	if err != nil {
		return Decision{Allowed: false, Reason: runerr.Wrap(runerr.CodeGateOwner, "stat "+survivorPath, err)}, true
	}
	tOwner, tOK := ownerOf(tInfo)
	sOwner, sOK := ownerOf(sInfo)
	if tOK && sOK && tOwner != sOwner {
		return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateOwner, "target and survivor have different owners")}, true
	}
	return Decision{}, false
}

func (g *Gate) checkOpenOrMapped(path string) (Decision, bool) {
	if _, open := g.opts.Probe.OpenByProcess(path); open {
		return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateInUse, "file is open by a running process")}, true
	}
	if _, mapped := g.opts.Probe.MappedByProcess(path); mapped {
		return Decision{Allowed: false, Reason: runerr.New(runerr.CodeGateLoaded, "file is mapped by a running process")}, true
	}
	return Decision{}, false
}

// RequiresHardlinkSameDevice reports whether target and survivor are
// eligible for a hardlink replacement (same filesystem device).
func RequiresHardlinkSameDevice(target, survivor model.FileRecord) error {
	if target.Device != survivor.Device {
		return runerr.New(runerr.CodeGateCrossDevice, "target and survivor are on different devices")
	}
	return nil
}

// ownerOf extracts a platform-appropriate owner identity from info; see
// owner_unix.go and owner_windows.go.
func ownerOf(info os.FileInfo) (uint32, bool) {
	return ownerOfSys(info)
}
