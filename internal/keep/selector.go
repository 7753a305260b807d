// Package keep implements component C5: choosing which member of a
// duplicate group survives. The five-rule cascade (keep-path, newest,
// oldest, smart-select, default) is grounded on the teacher's
// config.FlagValues mutually-exclusive flag groups pattern, generalized
// from "which output mode" to "which keeper rule", plus doublestar for the
// smart-select location-priority scoring (matching the teacher's own use
// of doublestar for glob evaluation elsewhere in the pipeline).
package keep

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/morroware/DupeFInder/internal/model"
)

// Selector chooses a survivor for a model.DigestGroup.
type Selector struct {
	KeepPath         string
	Newest           bool
	Oldest           bool
	SmartDelete      bool
	LocationPriority map[string]int
}

// Select applies the rule cascade in spec.md section 4.5 order: keep-path
// prefix match first (only when exactly one member matches -- zero or
// multiple matches fall through), then newest-wins, then oldest-wins, then
// smart-select scoring, and finally the lexicographically smallest path as
// the deterministic default. Ties at any stage are broken by the
// lexicographically smallest path so the decision is reproducible across
// runs.
func (s Selector) Select(g model.DigestGroup) model.KeepDecision {
	members := append([]model.FileRecord(nil), g.Members...)
	sort.Slice(members, func(i, j int) bool { return members[i].Path < members[j].Path })

	if s.KeepPath != "" {
		var matched []model.FileRecord
		for _, m := range members {
			if strings.HasPrefix(m.Path, s.KeepPath) {
				matched = append(matched, m)
			}
		}
		if len(matched) == 1 {
			return model.KeepDecision{GroupID: g.GroupID, SurvivorPath: matched[0].Path, Strategy: model.StrategyKeepPath}
		}
	}

	if s.Newest {
		best := members[0]
		for _, m := range members[1:] {
			if m.ModTime > best.ModTime || (m.ModTime == best.ModTime && m.Path < best.Path) {
				best = m
			}
		}
		return model.KeepDecision{GroupID: g.GroupID, SurvivorPath: best.Path, Strategy: model.StrategyNewest}
	}

	if s.Oldest {
		best := members[0]
		for _, m := range members[1:] {
			if m.ModTime < best.ModTime || (m.ModTime == best.ModTime && m.Path < best.Path) {
				best = m
			}
		}
		return model.KeepDecision{GroupID: g.GroupID, SurvivorPath: best.Path, Strategy: model.StrategyOldest}
	}

	if s.SmartDelete && len(s.LocationPriority) > 0 {
		best := members[0]
		bestScore := s.score(best.Path)
		for _, m := range members[1:] {
			score := s.score(m.Path)
			if score < bestScore || (score == bestScore && m.Path < best.Path) {
				best, bestScore = m, score
			}
		}
		return model.KeepDecision{GroupID: g.GroupID, SurvivorPath: best.Path, Strategy: model.StrategySmartSelect}
	}

	return model.KeepDecision{GroupID: g.GroupID, SurvivorPath: members[0].Path, Strategy: model.StrategyDefault}
}

// score returns the priority of the longest LocationPriority pattern that
// matches path, either as a doublestar glob or as a plain path prefix, so
// priority entries may be plain directories or globs; of two equally long
// matching patterns the lower priority wins. A path matching nothing gets
// the worst possible score so prioritized locations always win ties against
// unlisted ones.
func (s Selector) score(path string) int {
	best := int(^uint(0) >> 1) // max int
	bestLen := -1
	for pattern, priority := range s.LocationPriority {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if !ok && !strings.HasPrefix(path, pattern) {
			continue
		}
		if len(pattern) > bestLen || (len(pattern) == bestLen && priority < best) {
			best, bestLen = priority, len(pattern)
		}
	}
	return best
}
