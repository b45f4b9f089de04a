package services

import (
	"context"
	"strings"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/domain"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/logger"
)

// VoteService handles vote casting and category standings
type VoteService struct {
	candidatures CandidatureStore
	categories   CategoryStore
	votes        VoteStore
}

// NewVoteService creates a new vote service instance
func NewVoteService(candidatures CandidatureStore, categories CategoryStore, votes VoteStore) *VoteService {
	return &VoteService{
		candidatures: candidatures,
		categories:   categories,
		votes:        votes,
	}
}

// Cast records one vote. Only approved, published candidatures accept votes,
// and the storage-level unique constraint keeps concurrent duplicates out:
// there is no check-then-insert window.
func (s *VoteService) Cast(ctx context.Context, voterID, candidatureID int64) (*dto.VoteResponse, error) {
	candidature, err := s.candidatures.GetByID(ctx, candidatureID)
	if err != nil {
		return nil, err
	}

	if !candidature.IsVotable() {
		return nil, apperrors.ErrCandidatureNotVotable
	}

	vote := &models.Vote{
		CandidatureID: candidatureID,
		VoterID:       voterID,
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		return nil, err
	}

	total, err := s.votes.CountByCandidature(ctx, candidatureID)
	if err != nil {
		return nil, err
	}

	standings, err := s.votes.StandingsByCategory(ctx, candidature.CategoryID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("candidatureId", candidatureID).
		Int64("voterId", voterID).
		Int("total", total).
		Msg("Vote cast")

	return &dto.VoteResponse{
		ID:            vote.ID,
		CandidatureID: candidatureID,
		VoterID:       voterID,
		CreatedAt:     vote.CreatedAt,
		TotalVotes:    total,
		Rank:          domain.RankOf(standings, candidatureID),
	}, nil
}

// HasVoted reports whether the voter already voted for the candidature
func (s *VoteService) HasVoted(ctx context.Context, candidatureID, voterID int64) (bool, error) {
	return s.votes.HasVoted(ctx, candidatureID, voterID)
}

// GetStandings returns the full ranking of one category, most votes first.
// Ties go to the earlier submission.
func (s *VoteService) GetStandings(ctx context.Context, categoryID int64) (*dto.CategoryStandingsResponse, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return s.buildStandings(ctx, category)
}

// GetStandingsBySlug returns the ranking of the category with the given slug
func (s *VoteService) GetStandingsBySlug(ctx context.Context, slug string) (*dto.CategoryStandingsResponse, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return s.buildStandings(ctx, category)
}

func (s *VoteService) buildStandings(ctx context.Context, category *models.Category) (*dto.CategoryStandingsResponse, error) {
	standings, err := s.votes.StandingsByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	domain.SortStandings(standings)

	resp := &dto.CategoryStandingsResponse{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CategorySlug: category.Slug,
		Standings:    make([]dto.StandingResponse, 0, len(standings)),
	}

	for i, st := range standings {
		row := dto.StandingResponse{
			Rank:          i + 1,
			CandidatureID: st.CandidatureID,
			Votes:         st.Votes,
			SubmittedAt:   st.SubmittedAt,
		}
		if details, err := s.candidatures.GetDetailsByID(ctx, st.CandidatureID); err == nil {
			row.CandidateName = strings.TrimSpace(details.CandidateFirstName + " " + details.CandidateLastName)
		}
		resp.TotalVotes += st.Votes
		resp.Standings = append(resp.Standings, row)
	}

	return resp, nil
}
