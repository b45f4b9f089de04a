package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/dberrors"
	"github.com/makona/awards-backend/internal/pkg/logger"
)

// GetCategoriesParams holds parameters for filtering category listings.
type GetCategoriesParams struct {
	ClassID    *int64
	OnlyActive bool
	Search     string
}

// CategoryStatusCounts aggregates candidature counts of one category.
type CategoryStatusCounts struct {
	CategoryID   int64
	CategoryName string
	Pending      int64
	Approved     int64
	Rejected     int64
}

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

const categoryColumns = `id, class_id, name, slug, description, is_active,
		requires_photo, requires_video, requires_audio, requires_portfolio, requires_documents,
		max_video_duration, max_audio_duration, created_at, updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	var category models.Category
	err := row.Scan(
		&category.ID,
		&category.ClassID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.IsActive,
		&category.RequiresPhoto,
		&category.RequiresVideo,
		&category.RequiresAudio,
		&category.RequiresPortfolio,
		&category.RequiresDocuments,
		&category.MaxVideoDuration,
		&category.MaxAudioDuration,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error scanning category: %w", err)
	}
	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (class_id, name, slug, description, is_active,
			requires_photo, requires_video, requires_audio, requires_portfolio, requires_documents,
			max_video_duration, max_audio_duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		category.ClassID, category.Name, category.Slug, category.Description, category.IsActive,
		category.RequiresPhoto, category.RequiresVideo, category.RequiresAudio,
		category.RequiresPortfolio, category.RequiresDocuments,
		category.MaxVideoDuration, category.MaxAudioDuration,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(r.db.QueryRow(ctx, query, id))
}

// GetBySlug retrieves a category by slug
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	return scanCategory(r.db.QueryRow(ctx, query, slug))
}

// GetAll retrieves catgories matching the given filters
func (r *CategoryRepository) GetAll(ctx context.Context, params GetCategoriesParams) ([]*models.Category, error) {
	sqlBuilder := squirrel.Select(
		"id", "class_id", "name", "slug", "description", "is_active",
		"requires_photo", "requires_video", "requires_audio", "requires_portfolio", "requires_documents",
		"max_video_duration", "max_audio_duration", "created_at", "updated_at",
	).From("categories").
		PlaceholderFormat(squirrel.Dollar)

	if params.ClassID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"class_id": *params.ClassID})
	}
	if params.OnlyActive {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if params.Search != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.ILike{"name": "%" + params.Search + "%"})
	}

	sqlBuilder = sqlBuilder.OrderBy("name ASC")

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get categories SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Update updates an existing category's configurable fields
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	sql, args, err := squirrel.Update("categories").
		Set("class_id", category.ClassID).
		Set("name", category.Name).
		Set("slug", category.Slug).
		Set("description", category.Description).
		Set("is_active", category.IsActive).
		Set("requires_photo", category.RequiresPhoto).
		Set("requires_video", category.RequiresVideo).
		Set("requires_audio", category.RequiresAudio).
		Set("requires_portfolio", category.RequiresPortfolio).
		Set("requires_documents", category.RequiresDocuments).
		Set("max_video_duration", category.MaxVideoDuration).
		Set("max_audio_duration", category.MaxAudioDuration).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": category.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update category SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error updating category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// SetActive toggles the is_active flag of a category
func (r *CategoryRepository) SetActive(ctx context.Context, id int64, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category that has no candidatures
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	var hasCandidatures bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM candidatures WHERE category_id = $1)`,
		id).Scan(&hasCandidatures)
	if err != nil {
		return fmt.Errorf("error checking category relations: %w", err)
	}

	if hasCandidatures {
		return apperrors.ErrCategoryHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// GetStatusCounts returns per-category candidature counts grouped by status
func (r *CategoryRepository) GetStatusCounts(ctx context.Context) ([]CategoryStatusCounts, error) {
	query := `
		SELECT c.id, c.name,
			COUNT(*) FILTER (WHERE ca.status = 'pending'),
			COUNT(*) FILTER (WHERE ca.status = 'approved'),
			COUNT(*) FILTER (WHERE ca.status = 'rejected')
		FROM categories c
		LEFT JOIN candidatures ca ON ca.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CategoryStatusCounts
	for rows.Next() {
		var c CategoryStatusCounts
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Pending, &c.Approved, &c.Rejected); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
