package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/dberrors"
)

// CategoryClassRepository handles database operations for category classes
type CategoryClassRepository struct {
	db *pgxpool.Pool
}

// NewCategoryClassRepository creates a new category class repository
func NewCategoryClassRepository(db *pgxpool.Pool) *CategoryClassRepository {
	return &CategoryClassRepository{
		db: db,
	}
}

// Create inserts a new category class
func (r *CategoryClassRepository) Create(ctx context.Context, class *models.CategoryClass) error {
	query := `
		INSERT INTO category_classes (name, slug, description, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		class.Name, class.Slug, class.Description, class.DisplayOrder, class.IsActive,
	).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error creating category class: %w", err)
	}

	return nil
}

// GetByID retrieves a category class by ID
func (r *CategoryClassRepository) GetByID(ctx context.Context, id int64) (*models.CategoryClass, error) {
	query := `
		SELECT id, name, slug, description, display_order, is_active, created_at, updated_at
		FROM category_classes
		WHERE id = $1
	`

	var class models.CategoryClass
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Slug,
		&class.Description,
		&class.DisplayOrder,
		&class.IsActive,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryClassNotFound
		}
		return nil, fmt.Errorf("error retrieving category class: %w", err)
	}

	return &class, nil
}

// GetAll retrieves all category classes ordered for display
func (r *CategoryClassRepository) GetAll(ctx context.Context, onlyActive bool) ([]*models.CategoryClass, error) {
	query := `
		SELECT id, name, slug, description, display_order, is_active, created_at, updated_at
		FROM category_classes
	`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY display_order ASC, name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.CategoryClass
	for rows.Next() {
		var class models.CategoryClass
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Slug,
			&class.Description,
			&class.DisplayOrder,
			&class.IsActive,
			&class.CreatedAt,
			&class.UpdatedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}
