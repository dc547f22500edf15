// Package matcher computes the three-way partition of two collections of
// configuration entities keyed by natural identity. It is the pure core
// of reconciliation: given the source and target collections of one kind,
// it decides which entities exist only in the source, only in the target,
// or in both.
package matcher

import "github.com/closeops/schemasync/pkg/schema"

// Pair holds the source-side and target-side entities that matched on the
// same natural key. Both sides are carried so callers can map the
// source-environment ID to the target-environment ID without a second
// lookup.
type Pair[T schema.Entity] struct {
	Source T
	Target T
}

// Partition is the result of matching two collections by natural key.
// Every source entity appears in exactly one of OnlyInSource or InBoth;
// every target entity appears in exactly one of OnlyInTarget or InBoth.
type Partition[T schema.Entity] struct {
	OnlyInSource []T
	OnlyInTarget []T
	InBoth       []Pair[T]
}

// Split partitions source and target by natural key. Matching is
// case-sensitive and exact with no whitespace normalization, so
// "Qualified" and "qualified " are distinct entities on purpose.
// Iteration order within each slice follows the retrieval order of the
// collection it came from. When a collection contains duplicate keys the
// first occurrence wins for matching purposes and later duplicates are
// treated as unmatched.
func Split[T schema.Entity](source, target []T) Partition[T] {
	targetByKey := make(map[string]T, len(target))
	for _, t := range target {
		if _, dup := targetByKey[t.Key()]; !dup {
			targetByKey[t.Key()] = t
		}
	}

	var p Partition[T]
	matched := make(map[string]bool, len(source))
	for _, s := range source {
		t, ok := targetByKey[s.Key()]
		if ok && !matched[s.Key()] {
			matched[s.Key()] = true
			p.InBoth = append(p.InBoth, Pair[T]{Source: s, Target: t})
		} else {
			p.OnlyInSource = append(p.OnlyInSource, s)
		}
	}

	seen := make(map[string]bool, len(target))
	for _, t := range target {
		if matched[t.Key()] && !seen[t.Key()] {
			seen[t.Key()] = true
			continue
		}
		p.OnlyInTarget = append(p.OnlyInTarget, t)
	}

	return p
}

// SourceCount returns the number of source entities accounted for by the
// partition.
func (p Partition[T]) SourceCount() int {
	return len(p.OnlyInSource) + len(p.InBoth)
}

// TargetCount returns the number of target entities accounted for by the
// partition.
func (p Partition[T]) TargetCount() int {
	return len(p.OnlyInTarget) + len(p.InBoth)
}
