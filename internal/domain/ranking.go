package domain

import (
	"sort"
	"time"
)

// Standing is one candidature's tally within a category, as read from the
// vote ledger at ranking time.
type Standing struct {
	CandidatureID int64
	Votes         int
	SubmittedAt   time.Time
}

// SortStandings orders standings by vote count descending. Ties rank the
// earlier submission first; a same-instant tie falls back to the lower id so
// the order is total and stable across reads.
func SortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Votes != standings[j].Votes {
			return standings[i].Votes > standings[j].Votes
		}
		if !standings[i].SubmittedAt.Equal(standings[j].SubmittedAt) {
			return standings[i].SubmittedAt.Before(standings[j].SubmittedAt)
		}
		return standings[i].CandidatureID < standings[j].CandidatureID
	})
}

// RankOf returns the 1-based position of the candidature among the given
// standings, or 0 when the candidature is not in the set. Rank is recomputed
// from the ledger on every read; nothing is cached.
func RankOf(standings []Standing, candidatureID int64) int {
	SortStandings(standings)
	for i, s := range standings {
		if s.CandidatureID == candidatureID {
			return i + 1
		}
	}
	return 0
}
