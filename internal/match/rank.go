package match

import (
	"cmp"
	"slices"
)

// DefaultMinimumScore is the lowest experience sub-score, so one weak
// dimension alone never hides an otherwise strong match.
const DefaultMinimumScore = 40

// Scored is anything carrying a composite match score.
type Scored interface {
	MatchScoreValue() int
}

// RankByScore returns a new slice ordered by score, highest first.
// The sort is stable: equal scores keep their input order.
func RankByScore[S ~[]E, E Scored](items S) S {
	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b E) int {
		return cmp.Compare(b.MatchScoreValue(), a.MatchScoreValue())
	})
	return ranked
}

// FilterByMinimumScore returns the items scoring at least minScore, in input order.
func FilterByMinimumScore[S ~[]E, E Scored](items S, minScore int) S {
	kept := make(S, 0, len(items))
	for _, item := range items {
		if item.MatchScoreValue() >= minScore {
			kept = append(kept, item)
		}
	}
	return kept
}
