package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makona/awards-backend/internal/pkg/apperrors"
)

// approvedCandidature submits, approves and publishes a candidature for the
// given candidate, returning its id.
func approvedCandidature(t *testing.T, f *fixture, candidateID int64) int64 {
	t.Helper()

	created, err := f.svc.Submit(context.Background(), candidateID, 1, "", validMusicUploads())
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)
	_, err = f.svc.SetPublished(context.Background(), created.ID, true)
	require.NoError(t, err)
	return created.ID
}

func TestCastVote(t *testing.T) {
	f := newFixture()
	id := approvedCandidature(t, f, 10)

	resp, err := f.voteSvc.Cast(context.Background(), 50, id)
	require.NoError(t, err)

	assert.Equal(t, id, resp.CandidatureID)
	assert.Equal(t, 1, resp.TotalVotes)
	assert.Equal(t, 1, resp.Rank)
}

func TestCastVoteTwice(t *testing.T) {
	f := newFixture()
	id := approvedCandidature(t, f, 10)

	_, err := f.voteSvc.Cast(context.Background(), 50, id)
	require.NoError(t, err)

	_, err = f.voteSvc.Cast(context.Background(), 50, id)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVoted)

	// The first vote still stands
	count, err := f.votes.CountByCandidature(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCastVoteOnPendingCandidature(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	_, err = f.voteSvc.Cast(context.Background(), 50, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCandidatureNotVotable)
}

func TestCastVoteOnUnpublishedCandidature(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	// Approved but not yet published
	_, err = f.voteSvc.Cast(context.Background(), 50, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCandidatureNotVotable)
}

func TestCastVoteOnMissingCandidature(t *testing.T) {
	f := newFixture()

	_, err := f.voteSvc.Cast(context.Background(), 50, 404)
	assert.ErrorIs(t, err, apperrors.ErrCandidatureNotFound)
}

func TestStandingsOrderByVotesThenSubmission(t *testing.T) {
	f := newFixture()

	f.cands.users[11] = f.cands.users[10]
	f.cands.users[12] = f.cands.users[10]

	first := approvedCandidature(t, f, 10)
	second := approvedCandidature(t, f, 11)
	third := approvedCandidature(t, f, 12)

	// Make submission times distinct and increasing
	f.cands.candidatures[first].SubmittedAt = time.Now().Add(-3 * time.Hour)
	f.cands.candidatures[second].SubmittedAt = time.Now().Add(-2 * time.Hour)
	f.cands.candidatures[third].SubmittedAt = time.Now().Add(-1 * time.Hour)

	// second gets 2 votes, first and third get 1 each
	for voter, target := range map[int64]int64{50: second, 51: second, 52: first, 53: third} {
		_, err := f.voteSvc.Cast(context.Background(), voter, target)
		require.NoError(t, err)
	}

	standings, err := f.voteSvc.GetStandings(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, standings.Standings, 3)
	assert.Equal(t, second, standings.Standings[0].CandidatureID)
	// Tie between first and third resolves to the earlier submission
	assert.Equal(t, first, standings.Standings[1].CandidatureID)
	assert.Equal(t, third, standings.Standings[2].CandidatureID)
	assert.Equal(t, 1, standings.Standings[0].Rank)
	assert.Equal(t, 4, standings.TotalVotes)
}

func TestStandingsExcludeUnpublished(t *testing.T) {
	f := newFixture()

	f.cands.users[11] = f.cands.users[10]

	visible := approvedCandidature(t, f, 10)

	hidden, err := f.svc.Submit(context.Background(), 11, 1, "", validMusicUploads())
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), 99, hidden.ID, true, "")
	require.NoError(t, err)

	standings, err := f.voteSvc.GetStandingsBySlug(context.Background(), "best-music-artist")
	require.NoError(t, err)

	require.Len(t, standings.Standings, 1)
	assert.Equal(t, visible, standings.Standings[0].CandidatureID)
}

func TestHasVoted(t *testing.T) {
	f := newFixture()
	id := approvedCandidature(t, f, 10)

	voted, err := f.voteSvc.HasVoted(context.Background(), id, 50)
	require.NoError(t, err)
	assert.False(t, voted)

	_, err = f.voteSvc.Cast(context.Background(), 50, id)
	require.NoError(t, err)

	voted, err = f.voteSvc.HasVoted(context.Background(), id, 50)
	require.NoError(t, err)
	assert.True(t, voted)
}
