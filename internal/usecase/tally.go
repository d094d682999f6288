package usecase

import (
	"sort"

	"github.com/voteroom/voteroom/internal/domain/models"
)

// ComputeTally aggregates ranked ballots into a scored ranking. Each
// ballot is a full permutation of length K over options; the option at
// 0-indexed rank i earns K-i points. The accumulator is seeded with every
// option at zero in the given order, so zero ballots yield an all-zero
// tally in that order, and ties resolve to whichever option was seeded
// first (the sort is stable).
func ComputeTally(options []string, ballots [][]string) models.Tally {
	k := len(options)

	scores := make(map[string]int, k)
	tally := make(models.Tally, 0, k)

	for _, opt := range options {
		scores[opt] = 0
		tally = append(tally, models.TallyEntry{Option: opt})
	}

	for _, ballot := range ballots {
		for i, opt := range ballot {
			scores[opt] += k - i
		}
	}

	for i := range tally {
		tally[i].Score = scores[tally[i].Option]
	}

	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].Score > tally[j].Score
	})

	return tally
}
