package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/domain"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/dberrors"
)

// VoteRepository handles database operations for votes
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{
		db: db,
	}
}

// Create inserts a vote. The unique (candidature, voter) constraint is the
// single enforcement point for one-vote-per-candidature; a violation comes
// back as ErrAlreadyVoted no matter how many requests race.
func (r *VoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (candidature_id, voter_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, vote.CandidatureID, vote.VoterID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyVoted
		}
		return fmt.Errorf("error creating vote: %w", err)
	}

	return nil
}

// CountByCandidature returns the vote tally of one candidature
func (r *VoteRepository) CountByCandidature(ctx context.Context, candidatureID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM votes WHERE candidature_id = $1`,
		candidatureID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting votes: %w", err)
	}

	return count, nil
}

// CountByCategory returns the total number of votes cast across a category
func (r *VoteRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM votes v
		JOIN candidatures ca ON v.candidature_id = ca.id
		WHERE ca.category_id = $1`,
		categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting category votes: %w", err)
	}

	return count, nil
}

// HasVoted reports whether the voter already voted for the candidature
func (r *VoteRepository) HasVoted(ctx context.Context, candidatureID, voterID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE candidature_id = $1 AND voter_id = $2)`,
		candidatureID, voterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking vote existence: %w", err)
	}

	return exists, nil
}

// StandingsByCategory reads the tallies of every approved, published
// candidature in a category. Ordering is left to the domain sorter so rank
// semantics live in one place.
func (r *VoteRepository) StandingsByCategory(ctx context.Context, categoryID int64) ([]domain.Standing, error) {
	query := `
		SELECT ca.id, COUNT(v.id), ca.submitted_at
		FROM candidatures ca
		LEFT JOIN votes v ON v.candidature_id = ca.id
		WHERE ca.category_id = $1 AND ca.status = 'approved' AND ca.published = true
		GROUP BY ca.id, ca.submitted_at
	`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]domain.Standing, 0)
	for rows.Next() {
		var s domain.Standing
		if err := rows.Scan(&s.CandidatureID, &s.Votes, &s.SubmittedAt); err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return standings, nil
}
