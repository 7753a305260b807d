// Package group implements component C4: collecting fingerprinted file
// records into duplicate groups keyed by digest. Grounded on the teacher's
// discovery.Walker sort-then-batch shape (sort.Slice for deterministic
// output), generalized from "sort paths for stable diffing" to "sort
// (algorithm, digest, path) for stable grouping".
package group

import (
	"sort"
	"sync"

	"github.com/morroware/DupeFInder/internal/model"
)

// Stats accumulates grouping counters.
type Stats struct {
	mu         sync.Mutex
	Collisions uint64
}

func (s *Stats) incCollision() {
	s.mu.Lock()
	s.Collisions++
	s.mu.Unlock()
}

// Options configures Collect.
type Options struct {
	Similarity SimilarityProvider // nil defaults to ExactSimilarity{}
	Threshold  float64
}

// Collect drains in, sorts the accumulated records by (algorithm, digest
// hex, path), and partitions them into model.DigestGroup values. A run
// with millions of candidates spills to no disk structure here -- the
// fingerprinted record set (path, size, small digest) is small enough per
// entry that an in-memory sort comfortably scales to the sizes spec.md
// targets; very large trees are bounded by the walker's filters, not by
// the grouper.
//
// Within one digest, members must all report the same size; a member that
// doesn't (a digest collision, astronomically unlikely for the algorithms
// in use, or a sign of a corrupted cache row) causes the digest's members to
// be split into one group per size, and the digest is counted once in
// Stats.Collisions rather than silently merged.
//
// Group ids are assigned after singletons are dropped, densely from 1 in the
// sorted order above.
func Collect(in <-chan model.FileRecord, opts Options) ([]model.DigestGroup, *Stats) {
	sim := opts.Similarity
	if sim == nil {
		sim = ExactSimilarity{}
	}

	var all []model.FileRecord
	for rec := range in {
		all = append(all, rec)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Digest.Algo != all[j].Digest.Algo {
			return all[i].Digest.Algo < all[j].Digest.Algo
		}
		if all[i].Digest.Hex() != all[j].Digest.Hex() {
			return all[i].Digest.Hex() < all[j].Digest.Hex()
		}
		return all[i].Path < all[j].Path
	})

	stats := &Stats{}
	var groups []model.DigestGroup
	nextID := 1

	i := 0
	for i < len(all) {
		j := i + 1
		for j < len(all) && sim.Similar(all[i], all[j], opts.Threshold) {
			j++
		}
		bucket := all[i:j]
		groups = append(groups, splitBySize(bucket, &nextID, stats)...)
		i = j
	}

	// Drop singleton groups: a digest shared by exactly one file has no
	// duplicate to resolve.
	kept := groups[:0]
	for _, g := range groups {
		if len(g.Members) > 1 {
			g.GroupID = len(kept) + 1
			kept = append(kept, g)
		}
	}

	return kept, stats
}

// splitBySize partitions a digest-equal bucket by exact size, emitting one
// model.DigestGroup per distinct size in ascending size order, and counts
// one collision for the bucket when it holds more than one size.
func splitBySize(bucket []model.FileRecord, nextID *int, stats *Stats) []model.DigestGroup {
	bySize := make(map[uint64][]model.FileRecord)
	for _, rec := range bucket {
		bySize[rec.Size] = append(bySize[rec.Size], rec)
	}
	if len(bySize) > 1 {
		stats.incCollision()
	}

	var out []model.DigestGroup
	for size, members := range bySize {
		out = append(out, model.DigestGroup{
			Digest:  members[0].Digest,
			Size:    size,
			Members: members,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	for i := range out {
		out[i].GroupID = *nextID
		*nextID++
	}
	return out
}
