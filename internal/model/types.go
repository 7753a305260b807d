// Package model defines the data types shared across every stage of the
// dupefinder pipeline. Walking, fingerprinting, grouping, keep-selection,
// the safety gate, and the action executor all operate on these DTOs, the
// same way harvx's internal/pipeline package served as the cross-stage
// type backbone for its discovery/relevance/render pipeline.
//
// This package has zero business logic: only types, constructors, and
// lightweight validation helpers.
package model

import "fmt"

// Algorithm identifies which fingerprint algorithm and mode produced a
// Digest. The tag is carried alongside the digest bytes so that fast-mode
// and strong-mode digests are never mistakenly compared (spec invariant:
// digest equality alone never authorizes deletion across algorithm tags).
type Algorithm string

const (
	// AlgoFastXXH3 is the fast-mode digest: an xxh3-128 hash of the first
	// 65536 bytes of the file. The digest bytes hold only the hash; the
	// file size is paired with it by the grouper, which also splits by size.
	AlgoFastXXH3 Algorithm = "fast-xxh3-128"

	// AlgoBlake2b128 is a strong, full-content digest truncated to 128 bits.
	AlgoBlake2b128 Algorithm = "blake2b-128"

	// AlgoBlake2b256 is a strong, full-content digest at 256 bits.
	AlgoBlake2b256 Algorithm = "blake2b-256"

	// AlgoBlake2b512 is a strong, full-content digest at 512 bits.
	AlgoBlake2b512 Algorithm = "blake2b-512"
)

// IsFast reports whether the algorithm is the fast (prefix-based) mode.
func (a Algorithm) IsFast() bool {
	return a == AlgoFastXXH3
}

// Digest is an algorithm-tagged content fingerprint. Two digests only ever
// compare equal when both Algo and Bytes match; mixing a fast-mode digest
// with a strong-mode digest is a caller error and must never be done.
type Digest struct {
	Algo  Algorithm
	Bytes []byte
}

// Equal reports whether two digests share both algorithm and byte content.
func (d Digest) Equal(other Digest) bool {
	if d.Algo != other.Algo || len(d.Bytes) != len(other.Bytes) {
		return false
	}
	for i := range d.Bytes {
		if d.Bytes[i] != other.Bytes[i] {
			return false
		}
	}
	return true
}

// Hex returns the lowercase hex encoding of the digest bytes.
func (d Digest) Hex() string {
	return fmt.Sprintf("%x", d.Bytes)
}

func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.Algo, d.Hex())
}

// FileRecord is one candidate path discovered by the walker. Size, ModTime,
// and Device are filled at discovery time; Digest is filled by the
// fingerprinter. Records are immutable once the grouper reads them and are
// owned entirely by the run (never persisted -- CachedDigest is the
// persisted counterpart keyed by path).
type FileRecord struct {
	// Path is the absolute path to a regular file, validated at discovery
	// time. A file reached through a followed symlink is recorded at its
	// resolved target; other files keep their path under the scan root.
	Path string

	// Size is the file size in bytes at discovery time.
	Size uint64

	// ModTime is the file's modification time, nanoseconds since the Unix
	// epoch (time.Time.UnixNano), for sub-second precision on filesystems
	// that support it.
	ModTime int64

	// Device is the discovery-time device id, used to test hardlink
	// eligibility (hardlinks require survivor and target to share a device).
	Device uint64

	// Digest is set by the fingerprinter; the zero value (nil Bytes) means
	// "not yet fingerprinted".
	Digest Digest
}

// Fingerprinted reports whether the record has a non-empty digest.
func (f FileRecord) Fingerprinted() bool {
	return len(f.Digest.Bytes) > 0
}

// DigestGroup is a set of FileRecord sharing identical algorithm, digest,
// and size, with cardinality >= 2. GroupID is assigned densely and
// monotonically in the order groups are first encountered by the grouper's
// sort, making ids deterministic for a fixed input multiset and stable sort.
type DigestGroup struct {
	GroupID int
	Digest  Digest
	Size    uint64
	Members []FileRecord
}

// WastedBytes returns size * (cardinality - 1): the bytes reclaimable if
// every member but one is removed.
func (g DigestGroup) WastedBytes() uint64 {
	if len(g.Members) == 0 {
		return 0
	}
	return g.Size * uint64(len(g.Members)-1)
}

// CachedDigest is a persistent row keyed by canonical path: (digest, size,
// mtime, last-scan epoch). A cache hit is only reusable when the
// filesystem's current (size, mtime) equal the stored pair -- staleness
// beyond that invalidates the row.
type CachedDigest struct {
	Path        string
	Digest      Digest
	Size        uint64
	ModTime     int64
	LastScanUTC int64
}

// Fresh reports whether this cached row is still valid for a file observed
// with the given current size and mtime.
func (c CachedDigest) Fresh(size uint64, modTime int64) bool {
	return c.Size == size && c.ModTime == modTime
}

// KeepStrategy names the rule that selected a group's survivor. Derived per
// run; never persisted.
type KeepStrategy string

const (
	StrategyKeepPath    KeepStrategy = "keep-path"
	StrategyNewest      KeepStrategy = "newest"
	StrategyOldest      KeepStrategy = "oldest"
	StrategySmartSelect KeepStrategy = "smart-select"
	StrategyDefault     KeepStrategy = "lexicographic"
)

// KeepDecision is the per-group outcome of the keeper selector: which member
// survives and which rule decided it.
type KeepDecision struct {
	GroupID      int
	SurvivorPath string
	Strategy     KeepStrategy
}

// ActionKind names the resolution action applied to a non-survivor target.
type ActionKind string

const (
	ActionDelete    ActionKind = "delete"
	ActionTrash     ActionKind = "trash"
	ActionHardlink  ActionKind = "hardlink"
	ActionQuarantine ActionKind = "quarantine"
	ActionSkip      ActionKind = "skip"
)

// ActionOutcome is one executor result, appended to the audit log. Effected
// may differ from Intended (e.g. skip for a gate refusal or a declined
// prompt, or a dry-run recording a "would-X" intention without Effected
// being applied).
type ActionOutcome struct {
	GroupID        int
	TargetPath     string
	Intended       ActionKind
	Effected       ActionKind
	DryRun         bool
	BytesReclaimed uint64
	FailureReason  string // reason code; empty on success
	BackupPath     string // empty when no backup was taken
}

// Succeeded reports whether the outcome represents a successful, non-skip
// action (dry-run "would-X" outcomes also count as succeeded for reporting).
func (o ActionOutcome) Succeeded() bool {
	return o.FailureReason == "" && o.Effected != ActionSkip
}

// ResumePoint is a persisted snapshot of the grouper's output plus a
// checksum, sufficient to re-enter the pipeline at the keep-select stage.
// Created only on explicit interruption acknowledgment; deleted on clean
// completion.
type ResumePoint struct {
	ID        string
	CreatedAt int64
	Groups    []DigestGroup
	Checksum  string
}

// RunSummary is the final, read-only report of a completed (or
// partially-completed) run, built by the run controller from its counters.
type RunSummary struct {
	FilesDiscovered   uint64
	FilesFingerprinted uint64
	HashErrors        uint64
	GroupsFound       uint64
	BytesWasted       uint64
	ActionsAttempted  uint64
	ActionsSucceeded  uint64
	BytesReclaimed    uint64
	Cancelled         bool
}
