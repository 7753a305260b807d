package runconfig

import "time"

// DefaultThreads is used when --threads is unset or <= 0; NumCPU is resolved
// by the fingerprinter (fingerprint.Run) when it sees a non-positive thread
// count, not here, so this package stays free of a runtime import for a
// value callers may want to override in tests.
const DefaultThreads = 0

// DefaultFileTimeout bounds a single file's hashing time (spec.md C3).
const DefaultFileTimeout = 30 * time.Second

// DefaultCacheRetention is the window beyond which cache rows may be
// evicted at open (spec.md C2/CachedDigest).
const DefaultCacheRetention = 30 * 24 * time.Hour

// DefaultStrongBits is the strong-mode digest width when neither --sha256
// nor --sha512 analogue flag is given (spec.md: "absent flags -> 128-bit").
const DefaultStrongBits = 128

// defaults returns the compiled-in baseline Config, the lowest-precedence
// layer of the merge described in SPEC_FULL.md section 3.2.
func defaults() Config {
	return Config{
		MinSize:        0,
		MaxSize:        0,
		MaxDepth:       0,
		StrongBits:     DefaultStrongBits,
		Action:         ActionModeDelete,
		Threads:        DefaultThreads,
		FileTimeout:    DefaultFileTimeout,
		CacheRetention: DefaultCacheRetention,
		LocationPriority: map[string]int{},
	}
}
