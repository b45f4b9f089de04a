package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makona/awards-backend/internal/app/models"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
)

type fixture struct {
	cands   *fakeCandidatureStore
	files   *fakeFileStore
	cats    *fakeCategoryStore
	votes   *fakeVoteStore
	users   *fakeUserStore
	storage *fakeStorage
	mailer  *fakeMailer
	tx      *fakeTxRunner
	svc     *CandidatureService
	voteSvc *VoteService
}

func newFixture() *fixture {
	cands := newFakeCandidatureStore()

	musicCategory := &models.Category{
		ID:            1,
		Name:          "Best Music Artist",
		Slug:          "best-music-artist",
		IsActive:      true,
		RequiresPhoto: true,
		RequiresAudio: true,
	}
	closedCategory := &models.Category{
		ID:       2,
		Name:     "Closed Category",
		Slug:     "closed-category",
		IsActive: false,
	}
	cands.categories[1] = musicCategory
	cands.categories[2] = closedCategory

	candidate := &models.User{ID: 10, Email: "fanta@makona.example", FirstName: "Fanta", LastName: "Kamano", RoleType: models.RoleCandidate, IsActive: true}
	admin := &models.User{ID: 99, Email: "admin@makona.example", FirstName: "Admin", LastName: "User", RoleType: models.RoleAdmin, IsActive: true}
	cands.users[10] = candidate
	cands.users[99] = admin

	f := &fixture{
		cands:   cands,
		files:   newFakeFileStore(),
		cats:    &fakeCategoryStore{categories: cands.categories},
		votes:   newFakeVoteStore(cands),
		users:   &fakeUserStore{users: cands.users},
		storage: &fakeStorage{},
		mailer:  &fakeMailer{},
	}
	f.tx = &fakeTxRunner{}
	f.svc = NewCandidatureService(f.cands, f.files, f.cats, f.votes, f.users, f.tx, f.storage, f.mailer)
	f.voteSvc = NewVoteService(f.cands, f.cats, f.votes)
	return f
}

func upload(kind, filename string, size int64, duration *int) FileUpload {
	return FileUpload{
		Kind:            kind,
		Header:          &multipart.FileHeader{Filename: filename, Size: size},
		DurationSeconds: duration,
	}
}

func intPtr(v int) *int { return &v }

func validMusicUploads() []FileUpload {
	return []FileUpload{
		upload("photo", "press.jpg", 1024, nil),
		upload("audio", "single.mp3", 4096, intPtr(240)),
	}
}

func TestSubmitCreatesPendingCandidature(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Submit(context.Background(), 10, 1, "Debut album submission", validMusicUploads())
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusPending), resp.Status)
	assert.False(t, resp.Published)
	assert.True(t, resp.CanBeModified)
	assert.Equal(t, 0, resp.VoteCount)
	assert.Equal(t, 0, resp.Rank)
	assert.Len(t, resp.Files, 2)
	assert.Len(t, f.storage.saved, 2)
}

func TestSubmitInactiveCategory(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), 10, 2, "", validMusicUploads())
	assert.ErrorIs(t, err, apperrors.ErrCategoryInactive)
}

func TestSubmitUnknownCategory(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), 10, 404, "", validMusicUploads())
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestSubmitMissingRequiredKind(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), 10, 1, "", []FileUpload{
		upload("photo", "press.jpg", 1024, nil),
	})
	assert.ErrorIs(t, err, apperrors.ErrMissingRequiredFiles)
	// The whole batch is rejected; nothing reaches storage
	assert.Empty(t, f.storage.saved)
}

func TestSubmitRejectsWholeBatchOnOneBadFile(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), 10, 1, "", []FileUpload{
		upload("photo", "malware.exe", 1024, nil),
		upload("audio", "single.mp3", 4096, intPtr(240)),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, f.storage.saved)
}

func TestSubmitDuplicateCategory(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateSubmission)
}

func TestModifyUpdatesDescription(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "old", validMusicUploads())
	require.NoError(t, err)

	newDesc := "new description"
	resp, err := f.svc.Modify(context.Background(), 10, created.ID, &newDesc, nil)
	require.NoError(t, err)
	assert.Equal(t, "new description", resp.Description)
	// Files untouched when no replacement batch is given
	assert.Len(t, resp.Files, 2)
}

func TestModifyReplacesFilesAtomically(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	resp, err := f.svc.Modify(context.Background(), 10, created.ID, nil, []FileUpload{
		upload("photo", "better.png", 2048, nil),
		upload("audio", "remaster.flac", 8192, intPtr(300)),
	})
	require.NoError(t, err)

	require.Len(t, resp.Files, 2)
	assert.Equal(t, "better.png", resp.Files[0].FileName)
	// Old payloads are removed from storage after the replacement commits
	assert.Len(t, f.storage.deleted, 2)
}

func TestModifyByNonOwner(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	desc := "hijacked"
	_, err = f.svc.Modify(context.Background(), 77, created.ID, &desc, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestModifyAfterReview(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	desc := "too late"
	_, err = f.svc.Modify(context.Background(), 10, created.ID, &desc, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotModifiable)
}

func TestModifyLosesRaceAgainstReview(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	// An approval commits after the pending check but before the replacement
	// transaction; the in-transaction guard must reject the write.
	f.tx.beforeTx = func() {
		f.cands.candidatures[created.ID].Status = models.StatusApproved
	}

	_, err = f.svc.Modify(context.Background(), 10, created.ID, nil, []FileUpload{
		upload("photo", "late.png", 2048, nil),
		upload("audio", "late.mp3", 8192, intPtr(200)),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotModifiable)

	f.tx.beforeTx = nil
	resp, err := f.svc.GetCandidature(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Files, 2)
	assert.Equal(t, "press.jpg", resp.Files[0].FileName)
}

func TestModifyRejectsIncompleteReplacementBatch(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	// Replacement must satisfy the category rules on its own
	_, err = f.svc.Modify(context.Background(), 10, created.ID, nil, []FileUpload{
		upload("photo", "solo.jpg", 1024, nil),
	})
	assert.ErrorIs(t, err, apperrors.ErrMissingRequiredFiles)

	resp, err := f.svc.GetCandidature(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Files, 2)
}

func TestReviewApprove(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	resp, err := f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusApproved), resp.Status)
	assert.NotNil(t, resp.ReviewedAt)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, int64(99), *resp.ReviewedBy)
	assert.False(t, resp.CanBeModified)
	assert.Len(t, f.mailer.decisions, 1)
}

func TestReviewRejectRequiresReason(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), 99, created.ID, false, "   ")
	assert.ErrorIs(t, err, apperrors.ErrMissingReason)

	resp, err := f.svc.Review(context.Background(), 99, created.ID, false, "incomplete portfolio")
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusRejected), resp.Status)
	assert.Equal(t, "incomplete portfolio", resp.RejectionReason)
}

func TestReviewIsSingleShot(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), 99, created.ID, false, "changed my mind")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestSetPublishedIndependentOfStatus(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	// The flag toggles even while pending; the candidature just stays
	// invisible and unrankable until it is also approved.
	resp, err := f.svc.SetPublished(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Published)
	assert.Equal(t, string(models.StatusPending), resp.Status)
	assert.Equal(t, 0, resp.Rank)

	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	resp, err = f.svc.GetCandidature(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Rank)

	resp, err = f.svc.SetPublished(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.Published)

	_, err = f.svc.SetPublished(context.Background(), 999, true)
	assert.ErrorIs(t, err, apperrors.ErrCandidatureNotFound)
}

func TestDeleteByOwnerWhilePending(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), 10, false, created.ID)
	require.NoError(t, err)

	_, err = f.svc.GetCandidature(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCandidatureNotFound)
	assert.Len(t, f.storage.deleted, 2)
}

func TestDeleteByOwnerAfterReview(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), 10, false, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotModifiable)

	// Admin can still remove it
	err = f.svc.Delete(context.Background(), 99, true, created.ID)
	assert.NoError(t, err)
}

func TestDeleteByStranger(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), 77, false, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetStats(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Submit(context.Background(), 10, 1, "", validMusicUploads())
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), 99, created.ID, true, "")
	require.NoError(t, err)

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(0), stats.Pending)
}
