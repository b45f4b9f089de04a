package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makona/awards-backend/internal/app/models"
)

// CandidatureFileRepository handles database operations for candidature files
type CandidatureFileRepository struct {
	db *pgxpool.Pool
}

// NewCandidatureFileRepository creates a new candidature file repository
func NewCandidatureFileRepository(db *pgxpool.Pool) *CandidatureFileRepository {
	return &CandidatureFileRepository{
		db: db,
	}
}

const candidatureFileColumns = `id, candidature_id, kind, file_name, file_path, file_size,
		duration_seconds, title, display_order, uploaded_at`

// InsertTx inserts one attachment row within a transaction
func (r *CandidatureFileRepository) InsertTx(ctx context.Context, tx pgx.Tx, file *models.CandidatureFile) error {
	query := `
		INSERT INTO candidature_files (candidature_id, kind, file_name, file_path, file_size,
			duration_seconds, title, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, uploaded_at
	`

	err := tx.QueryRow(ctx, query,
		file.CandidatureID, file.Kind, file.FileName, file.FilePath, file.FileSize,
		file.DurationSeconds, file.Title, file.DisplayOrder,
	).Scan(&file.ID, &file.UploadedAt)
	if err != nil {
		return fmt.Errorf("error inserting candidature file: %w", err)
	}

	return nil
}

// DeleteByCandidatureTx removes all attachments of a candidature within a
// transaction and returns the removed paths so the storage layer can clean up
// after a successful commit.
func (r *CandidatureFileRepository) DeleteByCandidatureTx(ctx context.Context, tx pgx.Tx, candidatureID int64) ([]string, error) {
	rows, err := tx.Query(ctx, `
		DELETE FROM candidature_files WHERE candidature_id = $1 RETURNING file_path`,
		candidatureID)
	if err != nil {
		return nil, fmt.Errorf("error deleting candidature files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return paths, nil
}

// GetByCandidature retrieves all attachments of a candidature ordered for display
func (r *CandidatureFileRepository) GetByCandidature(ctx context.Context, candidatureID int64) ([]*models.CandidatureFile, error) {
	query := `SELECT ` + candidatureFileColumns + `
		FROM candidature_files
		WHERE candidature_id = $1
		ORDER BY display_order ASC, id ASC`

	rows, err := r.db.Query(ctx, query, candidatureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]*models.CandidatureFile, 0)
	for rows.Next() {
		var file models.CandidatureFile
		if err := rows.Scan(
			&file.ID,
			&file.CandidatureID,
			&file.Kind,
			&file.FileName,
			&file.FilePath,
			&file.FileSize,
			&file.DurationSeconds,
			&file.Title,
			&file.DisplayOrder,
			&file.UploadedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// GetPathsByCandidature returns the stored paths of a candidature's attachments
func (r *CandidatureFileRepository) GetPathsByCandidature(ctx context.Context, candidatureID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT file_path FROM candidature_files WHERE candidature_id = $1`,
		candidatureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return paths, nil
}
