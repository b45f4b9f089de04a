package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRankOf(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	standings := []Standing{
		{CandidatureID: 1, Votes: 3, SubmittedAt: base},
		{CandidatureID: 2, Votes: 10, SubmittedAt: base.Add(time.Hour)},
		{CandidatureID: 3, Votes: 3, SubmittedAt: base.Add(-time.Hour)},
		{CandidatureID: 4, Votes: 0, SubmittedAt: base},
	}

	assert.Equal(t, 1, RankOf(standings, 2))
	// Tie on 3 votes: candidature 3 submitted earlier, ranks above 1.
	assert.Equal(t, 2, RankOf(standings, 3))
	assert.Equal(t, 3, RankOf(standings, 1))
	assert.Equal(t, 4, RankOf(standings, 4))
	assert.Equal(t, 0, RankOf(standings, 99))
}

func TestRankOfSameInstantTieBreaksById(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	standings := []Standing{
		{CandidatureID: 7, Votes: 5, SubmittedAt: at},
		{CandidatureID: 3, Votes: 5, SubmittedAt: at},
	}
	assert.Equal(t, 1, RankOf(standings, 3))
	assert.Equal(t, 2, RankOf(standings, 7))
}

func TestRankProperties(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	standings := []Standing{
		{CandidatureID: 1, Votes: 4, SubmittedAt: base},
		{CandidatureID: 2, Votes: 4, SubmittedAt: base.Add(time.Minute)},
		{CandidatureID: 3, Votes: 9, SubmittedAt: base},
		{CandidatureID: 4, Votes: 1, SubmittedAt: base},
		{CandidatureID: 5, Votes: 0, SubmittedAt: base},
	}

	n := len(standings)
	seen := make(map[int]bool)
	for _, s := range standings {
		r := RankOf(standings, s.CandidatureID)
		assert.GreaterOrEqual(t, r, 1)
		assert.LessOrEqual(t, r, n)
		assert.False(t, seen[r], "ranks must be unique")
		seen[r] = true
	}

	// More votes never ranks below fewer votes.
	for _, a := range standings {
		for _, b := range standings {
			if a.Votes > b.Votes {
				assert.Less(t, RankOf(standings, a.CandidatureID), RankOf(standings, b.CandidatureID))
			}
		}
	}
}
