package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/app/models/dto"
	"github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/db"
	"github.com/makona/awards-backend/internal/domain"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. They reproduce the semantics the
// repositories guarantee (unique constraints, compare-and-set review) so the
// services can be exercised without a database.

type fakeTxRunner struct {
	// beforeTx, when set, runs just before the transaction body to simulate
	// a concurrent writer committing first
	beforeTx func()
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if f.beforeTx != nil {
		f.beforeTx()
	}
	return fn(ctx, pgx.Tx(nil))
}

type fakeCandidatureStore struct {
	nextID       int64
	candidatures map[int64]*models.Candidature
	categories   map[int64]*models.Category
	users        map[int64]*models.User
}

func newFakeCandidatureStore() *fakeCandidatureStore {
	return &fakeCandidatureStore{
		nextID:       1,
		candidatures: make(map[int64]*models.Candidature),
		categories:   make(map[int64]*models.Category),
		users:        make(map[int64]*models.User),
	}
}

func (f *fakeCandidatureStore) CreateTx(ctx context.Context, tx pgx.Tx, c *models.Candidature) error {
	for _, existing := range f.candidatures {
		if existing.CandidateID == c.CandidateID && existing.CategoryID == c.CategoryID {
			return apperrors.ErrDuplicateSubmission
		}
	}
	c.ID = f.nextID
	f.nextID++
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now()
	}
	cp := *c
	f.candidatures[c.ID] = &cp
	return nil
}

func (f *fakeCandidatureStore) GetByID(ctx context.Context, id int64) (*models.Candidature, error) {
	c, ok := f.candidatures[id]
	if !ok {
		return nil, apperrors.ErrCandidatureNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCandidatureStore) details(c *models.Candidature) *repositories.CandidatureDetails {
	d := &repositories.CandidatureDetails{
		ID:              c.ID,
		CandidateID:     c.CandidateID,
		CategoryID:      c.CategoryID,
		Description:     c.Description,
		Status:          c.Status,
		Published:       c.Published,
		SubmittedAt:     c.SubmittedAt,
		ReviewedAt:      c.ReviewedAt,
		ReviewedBy:      c.ReviewedBy,
		RejectionReason: c.RejectionReason,
	}
	if u, ok := f.users[c.CandidateID]; ok {
		d.CandidateFirstName = u.FirstName
		d.CandidateLastName = u.LastName
		d.CandidateEmail = u.Email
	}
	if cat, ok := f.categories[c.CategoryID]; ok {
		d.CategoryName = cat.Name
		d.CategorySlug = cat.Slug
	}
	return d
}

func (f *fakeCandidatureStore) GetDetailsByID(ctx context.Context, id int64) (*repositories.CandidatureDetails, error) {
	c, ok := f.candidatures[id]
	if !ok {
		return nil, apperrors.ErrCandidatureNotFound
	}
	return f.details(c), nil
}

func (f *fakeCandidatureStore) GetAll(ctx context.Context, params repositories.GetCandidaturesParams) ([]*repositories.CandidatureDetails, dto.PaginationInfo, error) {
	var out []*repositories.CandidatureDetails
	for _, c := range f.candidatures {
		if params.Status != nil && c.Status != *params.Status {
			continue
		}
		if params.CategoryID != nil && c.CategoryID != *params.CategoryID {
			continue
		}
		if params.Published != nil && c.Published != *params.Published {
			continue
		}
		out = append(out, f.details(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: len(out), TotalItems: int64(len(out))}, nil
}

func (f *fakeCandidatureStore) GetByCandidate(ctx context.Context, candidateID int64) ([]*repositories.CandidatureDetails, error) {
	var out []*repositories.CandidatureDetails
	for _, c := range f.candidatures {
		if c.CandidateID == candidateID {
			out = append(out, f.details(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCandidatureStore) MarkReviewed(ctx context.Context, id int64, status models.CandidatureStatus, reviewerID int64, reason string) error {
	c, ok := f.candidatures[id]
	if !ok {
		return apperrors.ErrCandidatureNotFound
	}
	if c.Status != models.StatusPending {
		return apperrors.ErrInvalidTransition
	}
	now := time.Now()
	c.Status = status
	c.ReviewedAt = &now
	c.ReviewedBy = &reviewerID
	c.RejectionReason = reason
	return nil
}

func (f *fakeCandidatureStore) SetPublished(ctx context.Context, id int64, published bool) error {
	c, ok := f.candidatures[id]
	if !ok {
		return apperrors.ErrCandidatureNotFound
	}
	c.Published = published
	return nil
}

func (f *fakeCandidatureStore) EnsurePendingTx(ctx context.Context, tx pgx.Tx, id int64) error {
	c, ok := f.candidatures[id]
	if !ok {
		return apperrors.ErrCandidatureNotFound
	}
	if c.Status != models.StatusPending {
		return apperrors.ErrNotModifiable
	}
	return nil
}

func (f *fakeCandidatureStore) UpdateDescriptionTx(ctx context.Context, tx pgx.Tx, id int64, description string) error {
	c, ok := f.candidatures[id]
	if !ok || c.Status != models.StatusPending {
		return apperrors.ErrNotModifiable
	}
	c.Description = description
	return nil
}

func (f *fakeCandidatureStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.candidatures[id]; !ok {
		return apperrors.ErrCandidatureNotFound
	}
	delete(f.candidatures, id)
	return nil
}

func (f *fakeCandidatureStore) CountByStatus(ctx context.Context) (map[models.CandidatureStatus]int64, error) {
	counts := make(map[models.CandidatureStatus]int64)
	for _, c := range f.candidatures {
		counts[c.Status]++
	}
	return counts, nil
}

type fakeFileStore struct {
	nextID int64
	files  map[int64][]*models.CandidatureFile
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{nextID: 1, files: make(map[int64][]*models.CandidatureFile)}
}

func (f *fakeFileStore) InsertTx(ctx context.Context, tx pgx.Tx, file *models.CandidatureFile) error {
	file.ID = f.nextID
	f.nextID++
	file.UploadedAt = time.Now()
	cp := *file
	f.files[file.CandidatureID] = append(f.files[file.CandidatureID], &cp)
	return nil
}

func (f *fakeFileStore) DeleteByCandidatureTx(ctx context.Context, tx pgx.Tx, candidatureID int64) ([]string, error) {
	var paths []string
	for _, file := range f.files[candidatureID] {
		paths = append(paths, file.FilePath)
	}
	delete(f.files, candidatureID)
	return paths, nil
}

func (f *fakeFileStore) GetByCandidature(ctx context.Context, candidatureID int64) ([]*models.CandidatureFile, error) {
	return f.files[candidatureID], nil
}

func (f *fakeFileStore) GetPathsByCandidature(ctx context.Context, candidatureID int64) ([]string, error) {
	var paths []string
	for _, file := range f.files[candidatureID] {
		paths = append(paths, file.FilePath)
	}
	return paths, nil
}

type fakeCategoryStore struct {
	categories map[int64]*models.Category
}

func (f *fakeCategoryStore) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperrors.ErrCategoryNotFound
}

func (f *fakeCategoryStore) GetStatusCounts(ctx context.Context) ([]repositories.CategoryStatusCounts, error) {
	return nil, nil
}

type fakeVoteStore struct {
	nextID       int64
	votes        map[int64]map[int64]bool // candidature -> voter set
	candidatures *fakeCandidatureStore
}

func newFakeVoteStore(cands *fakeCandidatureStore) *fakeVoteStore {
	return &fakeVoteStore{nextID: 1, votes: make(map[int64]map[int64]bool), candidatures: cands}
}

func (f *fakeVoteStore) Create(ctx context.Context, vote *models.Vote) error {
	voters := f.votes[vote.CandidatureID]
	if voters == nil {
		voters = make(map[int64]bool)
		f.votes[vote.CandidatureID] = voters
	}
	if voters[vote.VoterID] {
		return apperrors.ErrAlreadyVoted
	}
	voters[vote.VoterID] = true
	vote.ID = f.nextID
	f.nextID++
	vote.CreatedAt = time.Now()
	return nil
}

func (f *fakeVoteStore) CountByCandidature(ctx context.Context, candidatureID int64) (int, error) {
	return len(f.votes[candidatureID]), nil
}

func (f *fakeVoteStore) HasVoted(ctx context.Context, candidatureID, voterID int64) (bool, error) {
	return f.votes[candidatureID][voterID], nil
}

func (f *fakeVoteStore) StandingsByCategory(ctx context.Context, categoryID int64) ([]domain.Standing, error) {
	var standings []domain.Standing
	for _, c := range f.candidatures.candidatures {
		if c.CategoryID != categoryID || c.Status != models.StatusApproved || !c.Published {
			continue
		}
		standings = append(standings, domain.Standing{
			CandidatureID: c.ID,
			Votes:         len(f.votes[c.ID]),
			SubmittedAt:   c.SubmittedAt,
		})
	}
	return standings, nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveFile(header *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(header, "")
}

func (f *fakeStorage) SaveFileWithPath(header *multipart.FileHeader, subPath string) (string, error) {
	path := fmt.Sprintf("uploads/%s/%s", subPath, header.Filename)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) GetFullPath(fileURL string) string { return fileURL }

type fakeMailer struct {
	decisions []string
	welcomes  []string
}

func (f *fakeMailer) SendReviewDecision(toEmail, toName, categoryName, status, reason string) error {
	f.decisions = append(f.decisions, fmt.Sprintf("%s:%s", toEmail, status))
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(toEmail, toName string) error {
	f.welcomes = append(f.welcomes, toEmail)
	return nil
}
