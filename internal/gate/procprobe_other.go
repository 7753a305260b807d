//go:build !linux

package gate

// defaultProbe on non-Linux platforms has no /proc to inspect, so it
// always reports "clear" -- the gate's other invariants (system-root,
// never-delete, owner) still apply unconditionally.
type defaultProbe struct{}

func (defaultProbe) OpenByProcess(path string) (int, bool)   { return 0, false }
func (defaultProbe) MappedByProcess(path string) (int, bool) { return 0, false }
