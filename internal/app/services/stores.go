package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/db"
	"github.com/makona/awards-backend/internal/domain"
)

// The candidature and vote services talk to storage through these narrow
// interfaces, satisfied by the pgx repositories in production.

// CandidatureStore persists candidatures.
type CandidatureStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, candidature *models.Candidature) error
	GetByID(ctx context.Context, id int64) (*models.Candidature, error)
	GetDetailsByID(ctx context.Context, id int64) (*repositories.CandidatureDetails, error)
	GetAll(ctx context.Context, params repositories.GetCandidaturesParams) ([]*repositories.CandidatureDetails, dto.PaginationInfo, error)
	GetByCandidate(ctx context.Context, candidateID int64) ([]*repositories.CandidatureDetails, error)
	MarkReviewed(ctx context.Context, id int64, status models.CandidatureStatus, reviewerID int64, reason string) error
	SetPublished(ctx context.Context, id int64, published bool) error
	UpdateDescriptionTx(ctx context.Context, tx pgx.Tx, id int64, description string) error
	EnsurePendingTx(ctx context.Context, tx pgx.Tx, id int64) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[models.CandidatureStatus]int64, error)
}

// CandidatureFileStore persists candidature attachments.
type CandidatureFileStore interface {
	InsertTx(ctx context.Context, tx pgx.Tx, file *models.CandidatureFile) error
	DeleteByCandidatureTx(ctx context.Context, tx pgx.Tx, candidatureID int64) ([]string, error)
	GetByCandidature(ctx context.Context, candidatureID int64) ([]*models.CandidatureFile, error)
	GetPathsByCandidature(ctx context.Context, candidatureID int64) ([]string, error)
}

// CategoryStore reads categories and their rule configuration.
type CategoryStore interface {
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetStatusCounts(ctx context.Context) ([]repositories.CategoryStatusCounts, error)
}

// VoteStore persists and tallies votes.
type VoteStore interface {
	Create(ctx context.Context, vote *models.Vote) error
	CountByCandidature(ctx context.Context, candidatureID int64) (int, error)
	HasVoted(ctx context.Context, candidatureID, voterID int64) (bool, error)
	StandingsByCategory(ctx context.Context, categoryID int64) ([]domain.Standing, error)
}

// UserStore reads accounts.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TxRunner runs a function within a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}
