package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/usecase"
)

func TestComputeTally_PositionalScores(t *testing.T) {
	tally := usecase.ComputeTally(
		[]string{"A", "B", "C"},
		[][]string{{"A", "B", "C"}},
	)

	assert.Equal(t, models.Tally{
		{Option: "A", Score: 3},
		{Option: "B", Score: 2},
		{Option: "C", Score: 1},
	}, tally)
}

func TestComputeTally_TieBreaksByFirstSeen(t *testing.T) {
	// A and B both score 5; A was seeded first and must stay ahead.
	tally := usecase.ComputeTally(
		[]string{"A", "B", "C"},
		[][]string{
			{"A", "B", "C"},
			{"B", "A", "C"},
		},
	)

	assert.Equal(t, models.Tally{
		{Option: "A", Score: 5},
		{Option: "B", Score: 5},
		{Option: "C", Score: 2},
	}, tally)
}

func TestComputeTally_ZeroBallots(t *testing.T) {
	tally := usecase.ComputeTally([]string{"Pizza", "Sushi"}, nil)

	assert.Equal(t, models.Tally{
		{Option: "Pizza", Score: 0},
		{Option: "Sushi", Score: 0},
	}, tally)
}

func TestComputeTally_CommutativeAcrossBallots(t *testing.T) {
	options := []string{"A", "B", "C"}
	ballots := [][]string{
		{"C", "A", "B"},
		{"B", "C", "A"},
		{"A", "B", "C"},
	}

	forward := usecase.ComputeTally(options, ballots)

	reversed := usecase.ComputeTally(options, [][]string{ballots[2], ballots[1], ballots[0]})

	assert.Equal(t, forward, reversed)
}
