package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/domain"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/email"
	"github.com/makona/awards-backend/internal/pkg/filestorage"
	"github.com/makona/awards-backend/internal/pkg/logger"
)

// FileUpload is one uploaded attachment as received from the request layer:
// the declared kind plus the multipart payload and optional media metadata.
type FileUpload struct {
	Kind            string
	Header          *multipart.FileHeader
	DurationSeconds *int
	Title           string
}

// CandidatureService handles the candidature lifecycle: submission,
// modification, review, publication and deletion.
type CandidatureService struct {
	candidatures CandidatureStore
	files        CandidatureFileStore
	categories   CategoryStore
	votes        VoteStore
	users        UserStore
	tx           TxRunner
	storage      filestorage.FileStorage
	mailer       email.EmailService
}

// NewCandidatureService creates a new candidature service instance
func NewCandidatureService(
	candidatures CandidatureStore,
	files CandidatureFileStore,
	categories CategoryStore,
	votes VoteStore,
	users UserStore,
	tx TxRunner,
	storage filestorage.FileStorage,
	mailer email.EmailService,
) *CandidatureService {
	return &CandidatureService{
		candidatures: candidatures,
		files:        files,
		categories:   categories,
		votes:        votes,
		users:        users,
		tx:           tx,
		storage:      storage,
		mailer:       mailer,
	}
}

// parsedUpload pairs an upload with its parsed kind after validation.
type parsedUpload struct {
	upload FileUpload
	kind   domain.FileKind
}

// validateUploads checks the whole batch against the category rules. Nothing
// is written before every file passes: one bad attachment rejects them all.
func validateUploads(category *models.Category, uploads []FileUpload) ([]parsedUpload, error) {
	if len(uploads) == 0 {
		return nil, apperrors.ErrNoFilesProvided
	}

	parsed := make([]parsedUpload, 0, len(uploads))
	batch := make([]domain.Attachment, 0, len(uploads))
	for _, u := range uploads {
		kind, err := domain.ParseFileKind(u.Kind)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown file kind %q", u.Kind))
		}
		if u.Header == nil {
			return nil, apperrors.ErrNoFilesProvided
		}
		parsed = append(parsed, parsedUpload{upload: u, kind: kind})
		batch = append(batch, domain.Attachment{
			Kind:            kind,
			Filename:        u.Header.Filename,
			SizeBytes:       u.Header.Size,
			DurationSeconds: u.DurationSeconds,
		})
	}

	if err := domain.ValidateAttachments(batch, category.RuleSet()); err != nil {
		return nil, err
	}

	return parsed, nil
}

// storeUploads saves the payloads and inserts their rows within the given
// transaction. It returns the saved paths so the caller can clean up storage
// when the transaction rolls back.
func (s *CandidatureService) storeUploads(ctx context.Context, tx pgx.Tx, candidatureID int64, parsed []parsedUpload) ([]string, []*models.CandidatureFile, error) {
	savedPaths := make([]string, 0, len(parsed))
	stored := make([]*models.CandidatureFile, 0, len(parsed))

	for i, p := range parsed {
		subPath := fmt.Sprintf("candidatures/%d/%s", candidatureID, p.kind)
		path, err := s.storage.SaveFileWithPath(p.upload.Header, subPath)
		if err != nil {
			return savedPaths, nil, fmt.Errorf("error saving attachment: %w", err)
		}
		savedPaths = append(savedPaths, path)

		file := &models.CandidatureFile{
			CandidatureID:   candidatureID,
			Kind:            p.kind,
			FileName:        p.upload.Header.Filename,
			FilePath:        path,
			FileSize:        p.upload.Header.Size,
			DurationSeconds: p.upload.DurationSeconds,
			Title:           strings.TrimSpace(p.upload.Title),
			DisplayOrder:    i,
		}
		if err := s.files.InsertTx(ctx, tx, file); err != nil {
			return savedPaths, nil, err
		}
		stored = append(stored, file)
	}

	return savedPaths, stored, nil
}

func (s *CandidatureService) cleanupStorage(paths []string) {
	for _, path := range paths {
		if err := s.storage.DeleteFile(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to remove stored file")
		}
	}
}

// Submit creates a new candidature with its attachments. The category must be
// active and the attachment batch must satisfy its rules; a candidate gets at
// most one candidature per category.
func (s *CandidatureService) Submit(ctx context.Context, candidateID, categoryID int64, description string, uploads []FileUpload) (*dto.CandidatureResponse, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, apperrors.ErrCategoryInactive
	}

	parsed, err := validateUploads(category, uploads)
	if err != nil {
		return nil, err
	}

	candidature := &models.Candidature{
		CandidateID: candidateID,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(description),
		Status:      models.StatusPending,
		Published:   false,
	}

	var stored []*models.CandidatureFile
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.candidatures.CreateTx(ctx, tx, candidature); err != nil {
			return err
		}

		savedPaths, files, err := s.storeUploads(ctx, tx, candidature.ID, parsed)
		if err != nil {
			s.cleanupStorage(savedPaths)
			return err
		}
		stored = files
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("candidatureId", candidature.ID).
		Int64("candidateId", candidateID).
		Int64("categoryId", categoryID).
		Msg("Candidature submitted")

	resp := candidatureToResponse(candidature, category, stored, 0, 0)
	return &resp, nil
}

// Modify updates a pending candidature. A non-empty upload set replaces every
// existing attachment and must satisfy the category rules on its own.
func (s *CandidatureService) Modify(ctx context.Context, candidateID, candidatureID int64, description *string, uploads []FileUpload) (*dto.CandidatureResponse, error) {
	candidature, err := s.candidatures.GetByID(ctx, candidatureID)
	if err != nil {
		return nil, err
	}
	if candidature.CandidateID != candidateID {
		return nil, apperrors.ErrPermissionDenied
	}
	if !candidature.CanBeModified() {
		return nil, apperrors.ErrNotModifiable
	}

	category, err := s.categories.GetByID(ctx, candidature.CategoryID)
	if err != nil {
		return nil, err
	}

	var parsed []parsedUpload
	if len(uploads) > 0 {
		parsed, err = validateUploads(category, uploads)
		if err != nil {
			return nil, err
		}
	}

	var oldPaths []string
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Re-check under lock: a review may have landed since the read above
		if err := s.candidatures.EnsurePendingTx(ctx, tx, candidatureID); err != nil {
			return err
		}

		if description != nil {
			if err := s.candidatures.UpdateDescriptionTx(ctx, tx, candidatureID, strings.TrimSpace(*description)); err != nil {
				return err
			}
		}

		if len(parsed) > 0 {
			paths, err := s.files.DeleteByCandidatureTx(ctx, tx, candidatureID)
			if err != nil {
				return err
			}
			oldPaths = paths

			savedPaths, _, err := s.storeUploads(ctx, tx, candidatureID, parsed)
			if err != nil {
				s.cleanupStorage(savedPaths)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Old payloads leave disk only after the replacement is committed
	if len(parsed) > 0 {
		s.cleanupStorage(oldPaths)
	}

	return s.GetCandidature(ctx, candidatureID)
}

// GetCandidature returns the full candidature snapshot: files, vote count and
// in-category rank. Rank is computed on read from the vote ledger and is zero
// while the candidature is not votable.
func (s *CandidatureService) GetCandidature(ctx context.Context, id int64) (*dto.CandidatureResponse, error) {
	details, err := s.candidatures.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.files.GetByCandidature(ctx, id)
	if err != nil {
		return nil, err
	}

	voteCount, rank, err := s.tally(ctx, details)
	if err != nil {
		return nil, err
	}

	resp := detailsToResponse(details, files, voteCount, rank)
	return &resp, nil
}

func (s *CandidatureService) tally(ctx context.Context, details *repositories.CandidatureDetails) (voteCount, rank int, err error) {
	voteCount, err = s.votes.CountByCandidature(ctx, details.ID)
	if err != nil {
		return 0, 0, err
	}

	if details.Status == models.StatusApproved && details.Published {
		standings, err := s.votes.StandingsByCategory(ctx, details.CategoryID)
		if err != nil {
			return 0, 0, err
		}
		rank = domain.RankOf(standings, details.ID)
	}

	return voteCount, rank, nil
}

// ListByCandidate returns all candidatures of one candidate with tallies
func (s *CandidatureService) ListByCandidate(ctx context.Context, candidateID int64) ([]dto.CandidatureResponse, error) {
	detailsList, err := s.candidatures.GetByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, detailsList)
}

// List returns a filtered, paginated candidature listing
func (s *CandidatureService) List(ctx context.Context, params repositories.GetCandidaturesParams) ([]dto.CandidatureResponse, dto.PaginationInfo, error) {
	detailsList, pagination, err := s.candidatures.GetAll(ctx, params)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses, err := s.enrich(ctx, detailsList)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return responses, pagination, nil
}

func (s *CandidatureService) enrich(ctx context.Context, detailsList []*repositories.CandidatureDetails) ([]dto.CandidatureResponse, error) {
	responses := make([]dto.CandidatureResponse, 0, len(detailsList))
	for _, details := range detailsList {
		files, err := s.files.GetByCandidature(ctx, details.ID)
		if err != nil {
			return nil, err
		}
		voteCount, rank, err := s.tally(ctx, details)
		if err != nil {
			return nil, err
		}
		responses = append(responses, detailsToResponse(details, files, voteCount, rank))
	}
	return responses, nil
}

// Review records an approve or reject decision. Rejection requires a reason;
// a candidature can only be reviewed once.
func (s *CandidatureService) Review(ctx context.Context, reviewerID, candidatureID int64, approve bool, reason string) (*dto.CandidatureResponse, error) {
	reason = strings.TrimSpace(reason)
	if !approve && reason == "" {
		return nil, apperrors.ErrMissingReason
	}

	status := models.StatusApproved
	if !approve {
		status = models.StatusRejected
	}

	if err := s.candidatures.MarkReviewed(ctx, candidatureID, status, reviewerID, reason); err != nil {
		return nil, err
	}

	resp, err := s.GetCandidature(ctx, candidatureID)
	if err != nil {
		return nil, err
	}

	s.notifyReviewDecision(ctx, resp, reason)
	return resp, nil
}

func (s *CandidatureService) notifyReviewDecision(ctx context.Context, resp *dto.CandidatureResponse, reason string) {
	candidate, err := s.users.GetByID(ctx, resp.CandidateID)
	if err != nil {
		logger.Warn().Err(err).Int64("candidateId", resp.CandidateID).Msg("Failed to load candidate for notification")
		return
	}

	if err := s.mailer.SendReviewDecision(candidate.Email, candidate.FullName(), resp.CategoryName, resp.Status, reason); err != nil {
		logger.Warn().Err(err).Str("email", candidate.Email).Msg("Failed to send review decision email")
	}
}

// SetPublished toggles the published flag. The flag is independent of the
// review status; visibility and votability additionally require approval.
func (s *CandidatureService) SetPublished(ctx context.Context, candidatureID int64, published bool) (*dto.CandidatureResponse, error) {
	if err := s.candidatures.SetPublished(ctx, candidatureID, published); err != nil {
		return nil, err
	}

	return s.GetCandidature(ctx, candidatureID)
}

// Delete removes a candidature. Candidates may withdraw their own pending
// submissions; admins may delete any. Stored payloads are removed after the
// row is gone.
func (s *CandidatureService) Delete(ctx context.Context, requesterID int64, isAdmin bool, candidatureID int64) error {
	candidature, err := s.candidatures.GetByID(ctx, candidatureID)
	if err != nil {
		return err
	}

	if !isAdmin {
		if candidature.CandidateID != requesterID {
			return apperrors.ErrPermissionDenied
		}
		if !candidature.CanBeModified() {
			return apperrors.ErrNotModifiable
		}
	}

	paths, err := s.files.GetPathsByCandidature(ctx, candidatureID)
	if err != nil {
		return err
	}

	if err := s.candidatures.Delete(ctx, candidatureID); err != nil {
		return err
	}

	s.cleanupStorage(paths)

	logger.Info().Int64("candidatureId", candidatureID).Int64("requesterId", requesterID).Msg("Candidature deleted")
	return nil
}

// GetStats aggregates candidature totals for the admin dashboard
func (s *CandidatureService) GetStats(ctx context.Context) (*dto.CandidatureStatsResponse, error) {
	counts, err := s.candidatures.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	perCategory, err := s.categories.GetStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]dto.StatusCounts, len(perCategory))
	for _, c := range perCategory {
		byCategory[c.CategoryName] = dto.StatusCounts{
			Total:    c.Pending + c.Approved + c.Rejected,
			Pending:  c.Pending,
			Approved: c.Approved,
			Rejected: c.Rejected,
		}
	}

	stats := &dto.CandidatureStatsResponse{
		Pending:    counts[models.StatusPending],
		Approved:   counts[models.StatusApproved],
		Rejected:   counts[models.StatusRejected],
		ByCategory: byCategory,
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected

	return stats, nil
}

func filesToResponses(files []*models.CandidatureFile) []dto.CandidatureFileResponse {
	responses := make([]dto.CandidatureFileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, dto.CandidatureFileResponse{
			ID:              f.ID,
			Kind:            string(f.Kind),
			FileName:        f.FileName,
			FilePath:        f.FilePath,
			FileSize:        f.FileSize,
			DurationSeconds: f.DurationSeconds,
			Title:           f.Title,
			DisplayOrder:    f.DisplayOrder,
			UploadedAt:      f.UploadedAt,
		})
	}
	return responses
}

func detailsToResponse(d *repositories.CandidatureDetails, files []*models.CandidatureFile, voteCount, rank int) dto.CandidatureResponse {
	candidateName := strings.TrimSpace(d.CandidateFirstName + " " + d.CandidateLastName)

	return dto.CandidatureResponse{
		ID:              d.ID,
		CandidateID:     d.CandidateID,
		CandidateName:   candidateName,
		CategoryID:      d.CategoryID,
		CategoryName:    d.CategoryName,
		CategorySlug:    d.CategorySlug,
		Description:     d.Description,
		Status:          string(d.Status),
		Published:       d.Published,
		SubmittedAt:     d.SubmittedAt,
		ReviewedAt:      d.ReviewedAt,
		ReviewedBy:      d.ReviewedBy,
		RejectionReason: d.RejectionReason,
		VoteCount:       voteCount,
		Rank:            rank,
		CanBeModified:   d.Status == models.StatusPending,
		Files:           filesToResponses(files),
	}
}

func candidatureToResponse(c *models.Candidature, category *models.Category, files []*models.CandidatureFile, voteCount, rank int) dto.CandidatureResponse {
	resp := dto.CandidatureResponse{
		ID:              c.ID,
		CandidateID:     c.CandidateID,
		CategoryID:      c.CategoryID,
		Description:     c.Description,
		Status:          string(c.Status),
		Published:       c.Published,
		SubmittedAt:     c.SubmittedAt,
		ReviewedAt:      c.ReviewedAt,
		ReviewedBy:      c.ReviewedBy,
		RejectionReason: c.RejectionReason,
		VoteCount:       voteCount,
		Rank:            rank,
		CanBeModified:   c.CanBeModified(),
		Files:           filesToResponses(files),
	}
	if category != nil {
		resp.CategoryName = category.Name
		resp.CategorySlug = category.Slug
	}
	return resp
}
