package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/dberrors"
	"github.com/makona/awards-backend/internal/pkg/helpers"
	"github.com/makona/awards-backend/internal/pkg/logger"
)

// CandidatureDetails is a candidature row joined with candidate and category
// information for listings and detail views.
type CandidatureDetails struct {
	ID                 int64
	CandidateID        int64
	CandidateFirstName string
	CandidateLastName  string
	CandidateEmail     string
	CategoryID         int64
	CategoryName       string
	CategorySlug       string
	Description        string
	Status             models.CandidatureStatus
	Published          bool
	SubmittedAt        time.Time
	ReviewedAt         *time.Time
	ReviewedBy         *int64
	RejectionReason    string
}

// GetCandidaturesParams holds parameters for filtering and pagination.
type GetCandidaturesParams struct {
	Status      *models.CandidatureStatus
	CategoryID  *int64
	CandidateID *int64
	Published   *bool
	Search      string
	SortBy      string
	SortOrder   string
	Page        int
	Size        int
}

// DefaultCandidatureSort is the sort key listings fall back to when the
// request names none.
const DefaultCandidatureSort = "submittedAt"

// candidatureSortColumns maps the sort keys the API accepts to the columns
// they order by. Unknown keys fall back to the default.
var candidatureSortColumns = map[string]string{
	"submittedAt": "ca.submitted_at",
	"status":      "ca.status",
	"category":    "c.name",
	"candidate":   "u.last_name",
}

// CandidatureRepository handles database operations for candidatures
type CandidatureRepository struct {
	db *pgxpool.Pool
}

// NewCandidatureRepository creates a new candidature repository
func NewCandidatureRepository(db *pgxpool.Pool) *CandidatureRepository {
	return &CandidatureRepository{
		db: db,
	}
}

func (r *CandidatureRepository) selectDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"ca.id", "ca.candidate_id", "u.first_name", "u.last_name", "u.email",
		"ca.category_id", "c.name", "c.slug",
		"ca.description", "ca.status", "ca.published", "ca.submitted_at",
		"ca.reviewed_at", "ca.reviewed_by", "ca.rejection_reason",
	).From("candidatures ca").
		Join("users u ON ca.candidate_id = u.id").
		Join("categories c ON ca.category_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanCandidatureDetails(row pgx.Row) (*CandidatureDetails, error) {
	var d CandidatureDetails
	err := row.Scan(
		&d.ID, &d.CandidateID, &d.CandidateFirstName, &d.CandidateLastName, &d.CandidateEmail,
		&d.CategoryID, &d.CategoryName, &d.CategorySlug,
		&d.Description, &d.Status, &d.Published, &d.SubmittedAt,
		&d.ReviewedAt, &d.ReviewedBy, &d.RejectionReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCandidatureNotFound
		}
		return nil, fmt.Errorf("error scanning candidature details: %w", err)
	}
	return &d, nil
}

// CreateTx inserts a new candidature within a transaction. The unique
// (candidate, category) constraint turns into ErrDuplicateSubmission.
func (r *CandidatureRepository) CreateTx(ctx context.Context, tx pgx.Tx, candidature *models.Candidature) error {
	query := `
		INSERT INTO candidatures (candidate_id, category_id, description, status, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`

	err := tx.QueryRow(ctx, query,
		candidature.CandidateID, candidature.CategoryID, candidature.Description,
		candidature.Status, candidature.Published,
	).Scan(&candidature.ID, &candidature.SubmittedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_candidatures_candidate_category") {
			return apperrors.ErrDuplicateSubmission
		}
		return fmt.Errorf("error creating candidature: %w", err)
	}

	return nil
}

// GetByID retrieves a candidature by ID
func (r *CandidatureRepository) GetByID(ctx context.Context, id int64) (*models.Candidature, error) {
	query := `
		SELECT id, candidate_id, category_id, description, status, published,
			submitted_at, reviewed_at, reviewed_by, rejection_reason
		FROM candidatures
		WHERE id = $1
	`

	var candidature models.Candidature
	err := r.db.QueryRow(ctx, query, id).Scan(
		&candidature.ID,
		&candidature.CandidateID,
		&candidature.CategoryID,
		&candidature.Description,
		&candidature.Status,
		&candidature.Published,
		&candidature.SubmittedAt,
		&candidature.ReviewedAt,
		&candidature.ReviewedBy,
		&candidature.RejectionReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCandidatureNotFound
		}
		return nil, fmt.Errorf("error retrieving candidature: %w", err)
	}

	return &candidature, nil
}

// GetDetailsByID retrieves a candidature with candidate and category joined
func (r *CandidatureRepository) GetDetailsByID(ctx context.Context, id int64) (*CandidatureDetails, error) {
	sqlStr, args, err := r.selectDetailsQuery().Where(squirrel.Eq{"ca.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get candidature details SQL")
		return nil, err
	}

	return scanCandidatureDetails(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetAll retrieves a paginated and filtered list of candidatures with details.
func (r *CandidatureRepository) GetAll(ctx context.Context, params GetCandidaturesParams) ([]*CandidatureDetails, dto.PaginationInfo, error) {
	sqlBuilder := r.selectDetailsQuery()
	countBuilder := squirrel.Select("count(*)").From("candidatures ca").
		Join("users u ON ca.candidate_id = u.id").
		PlaceholderFormat(squirrel.Dollar)

	apply := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Status != nil {
			b = b.Where(squirrel.Eq{"ca.status": *params.Status})
		}
		if params.CategoryID != nil {
			b = b.Where(squirrel.Eq{"ca.category_id": *params.CategoryID})
		}
		if params.CandidateID != nil {
			b = b.Where(squirrel.Eq{"ca.candidate_id": *params.CandidateID})
		}
		if params.Published != nil {
			b = b.Where(squirrel.Eq{"ca.published": *params.Published})
		}
		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"u.first_name": pattern},
				squirrel.ILike{"u.last_name": pattern},
				squirrel.ILike{"u.email": pattern},
			})
		}
		return b
	}
	sqlBuilder = apply(sqlBuilder)
	countBuilder = apply(countBuilder)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count candidatures SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count candidatures query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)

	if totalItems == 0 {
		return []*CandidatureDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)

	sortBy := candidatureSortColumns[DefaultCandidatureSort]
	if validSort, ok := candidatureSortColumns[params.SortBy]; ok {
		sortBy = validSort
	}
	sortOrder := "DESC"
	if strings.ToUpper(params.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}
	sqlBuilder = sqlBuilder.OrderBy(fmt.Sprintf("%s %s", sortBy, sortOrder))

	sqlBuilder = sqlBuilder.Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all candidatures SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all candidatures query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	candidatures := make([]*CandidatureDetails, 0)
	for rows.Next() {
		d, err := scanCandidatureDetails(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		candidatures = append(candidatures, d)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through candidature rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return candidatures, pagination, nil
}

// GetByCandidate retrieves all candidatures submitted by a candidate
func (r *CandidatureRepository) GetByCandidate(ctx context.Context, candidateID int64) ([]*CandidatureDetails, error) {
	sqlStr, args, err := r.selectDetailsQuery().
		Where(squirrel.Eq{"ca.candidate_id": candidateID}).
		OrderBy("ca.submitted_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get candidatures by candidate SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidatures := make([]*CandidatureDetails, 0)
	for rows.Next() {
		d, err := scanCandidatureDetails(rows)
		if err != nil {
			return nil, err
		}
		candidatures = append(candidatures, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidatures, nil
}

// MarkReviewed records a review decision. The update only matches pending
// rows, so two concurrent reviews cannot both succeed: the second sees zero
// affected rows.
func (r *CandidatureRepository) MarkReviewed(ctx context.Context, id int64, status models.CandidatureStatus, reviewerID int64, reason string) error {
	query := `
		UPDATE candidatures
		SET status = $1, reviewed_at = NOW(), reviewed_by = $2, rejection_reason = $3
		WHERE id = $4 AND status = 'pending'
	`

	cmdTag, err := r.db.Exec(ctx, query, status, reviewerID, reason, id)
	if err != nil {
		return fmt.Errorf("error reviewing candidature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Zero rows: either the candidature is gone or it already left pending
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// SetPublished toggles the published flag regardless of review status. Public
// listings and vote eligibility still require approved AND published, so
// publishing a pending or rejected candidature has no visible effect.
func (r *CandidatureRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE candidatures SET published = $1 WHERE id = $2`, published, id)
	if err != nil {
		return fmt.Errorf("error publishing candidature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCandidatureNotFound
	}

	return nil
}

// UpdateDescriptionTx updates the description of a still-pending candidature
// within a transaction.
func (r *CandidatureRepository) UpdateDescriptionTx(ctx context.Context, tx pgx.Tx, id int64, description string) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE candidatures SET description = $1 WHERE id = $2 AND status = 'pending'`,
		description, id)
	if err != nil {
		return fmt.Errorf("error updating candidature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotModifiable
	}

	return nil
}

// EnsurePendingTx locks a candidature row and verifies it is still pending.
// Modification transactions take this lock first so a review committing
// between the service-level check and the write cannot race the replacement.
func (r *CandidatureRepository) EnsurePendingTx(ctx context.Context, tx pgx.Tx, id int64) error {
	var status models.CandidatureStatus
	err := tx.QueryRow(ctx, `SELECT status FROM candidatures WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCandidatureNotFound
		}
		return fmt.Errorf("error locking candidature: %w", err)
	}

	if status != models.StatusPending {
		return apperrors.ErrNotModifiable
	}

	return nil
}

// Delete removes a candidature; votes and files cascade at the schema level
func (r *CandidatureRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM candidatures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting candidature: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCandidatureNotFound
	}

	return nil
}

// CountByStatus returns candidature totals grouped by status
func (r *CandidatureRepository) CountByStatus(ctx context.Context) (map[models.CandidatureStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM candidatures GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.CandidatureStatus]int64)
	for rows.Next() {
		var status models.CandidatureStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
