package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makona/awards-backend/internal/pkg/apperrors"
)

func intPtr(i int) *int { return &i }

func TestValidateAttachment(t *testing.T) {
	rules := NewRuleSet(KindPhoto, KindVideo).WithDurationCaps(300, 0)

	tests := []struct {
		name    string
		att     Attachment
		wantErr error
	}{
		{
			name: "valid photo",
			att:  Attachment{Kind: KindPhoto, Filename: "portrait.jpg", SizeBytes: 1024},
		},
		{
			name:    "exe declared as photo",
			att:     Attachment{Kind: KindPhoto, Filename: "malware.exe", SizeBytes: 1024},
			wantErr: apperrors.ErrInvalidFileExtension,
		},
		{
			name:    "no extension",
			att:     Attachment{Kind: KindDocument, Filename: "README", SizeBytes: 10},
			wantErr: apperrors.ErrInvalidFileExtension,
		},
		{
			name:    "oversize file",
			att:     Attachment{Kind: KindPhoto, Filename: "huge.png", SizeBytes: MaxAttachmentSizeBytes + 1},
			wantErr: apperrors.ErrFileTooLarge,
		},
		{
			name: "exactly at size ceiling",
			att:  Attachment{Kind: KindPhoto, Filename: "fits.png", SizeBytes: MaxAttachmentSizeBytes},
		},
		{
			name: "video within category cap",
			att:  Attachment{Kind: KindVideo, Filename: "clip.mp4", SizeBytes: 2048, DurationSeconds: intPtr(300)},
		},
		{
			name:    "video over category cap",
			att:     Attachment{Kind: KindVideo, Filename: "clip.mp4", SizeBytes: 2048, DurationSeconds: intPtr(301)},
			wantErr: apperrors.ErrDurationOutOfRange,
		},
		{
			name:    "zero-second video",
			att:     Attachment{Kind: KindVideo, Filename: "clip.mp4", SizeBytes: 2048, DurationSeconds: intPtr(0)},
			wantErr: apperrors.ErrDurationOutOfRange,
		},
		{
			name: "unknown duration skips the check",
			att:  Attachment{Kind: KindVideo, Filename: "clip.mp4", SizeBytes: 2048},
		},
		{
			name:    "invalid kind",
			att:     Attachment{Kind: FileKind("sticker"), Filename: "a.png", SizeBytes: 1},
			wantErr: apperrors.ErrInvalidFileKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttachment(tt.att, rules)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAttachmentsBatch(t *testing.T) {
	rules := NewRuleSet(KindPhoto, KindVideo, KindAudio)

	t.Run("scenario A: audio missing", func(t *testing.T) {
		err := ValidateAttachments([]Attachment{
			{Kind: KindPhoto, Filename: "p.jpg", SizeBytes: 100},
			{Kind: KindVideo, Filename: "v.mp4", SizeBytes: 100},
		}, rules)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrMissingRequiredFiles)

		mk, ok := AsMissingKinds(err)
		require.True(t, ok)
		assert.Equal(t, []FileKind{KindAudio}, mk.Missing)
	})

	t.Run("scenario B: bad extension fails the whole batch", func(t *testing.T) {
		err := ValidateAttachments([]Attachment{
			{Kind: KindPhoto, Filename: "payload.exe", SizeBytes: 100},
			{Kind: KindVideo, Filename: "v.mp4", SizeBytes: 100},
			{Kind: KindAudio, Filename: "a.mp3", SizeBytes: 100},
		}, rules)
		require.Error(t, err)

		var batch *BatchError
		require.True(t, errors.As(err, &batch))
		require.Len(t, batch.Failures, 1)
		assert.Equal(t, "payload.exe", batch.Failures[0].Filename)
		assert.ErrorIs(t, batch.Failures[0], apperrors.ErrInvalidFileExtension)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("all failures are aggregated", func(t *testing.T) {
		err := ValidateAttachments([]Attachment{
			{Kind: KindPhoto, Filename: "a.exe", SizeBytes: 100},
			{Kind: KindVideo, Filename: "b.doc", SizeBytes: 100},
		}, rules)
		var batch *BatchError
		require.True(t, errors.As(err, &batch))
		assert.Len(t, batch.Failures, 2)
	})

	t.Run("empty batch", func(t *testing.T) {
		err := ValidateAttachments(nil, rules)
		assert.ErrorIs(t, err, apperrors.ErrNoFilesProvided)
	})

	t.Run("complete batch passes", func(t *testing.T) {
		err := ValidateAttachments([]Attachment{
			{Kind: KindPhoto, Filename: "p.jpg", SizeBytes: 100},
			{Kind: KindPhoto, Filename: "p2.jpg", SizeBytes: 100},
			{Kind: KindVideo, Filename: "v.mp4", SizeBytes: 100},
			{Kind: KindAudio, Filename: "a.mp3", SizeBytes: 100},
		}, rules)
		assert.NoError(t, err)
	})
}
