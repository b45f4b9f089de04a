package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/makona/awards-backend/internal/pkg/apperrors"
)

// Attachment describes an uploaded file before it is persisted: the declared
// kind, the original filename, the payload size and, when known, the media
// duration in seconds.
type Attachment struct {
	Kind            FileKind
	Filename        string
	SizeBytes       int64
	DurationSeconds *int
}

// AttachmentError reports why a single attachment failed validation.
type AttachmentError struct {
	Filename string
	Kind     FileKind
	Err      error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Filename, e.Kind, e.Err)
}

func (e *AttachmentError) Unwrap() error {
	return e.Err
}

// BatchError aggregates the per-file failures of a submission. A batch either
// passes as a whole or is rejected as a whole.
type BatchError struct {
	Failures []*AttachmentError
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return "invalid attachments: " + strings.Join(msgs, "; ")
}

func (e *BatchError) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// ValidateAttachment checks a single attachment against the kind's extension
// allow-list, the global size ceiling and the effective duration cap from the
// rule set. A nil duration skips the duration check (duration unknown).
func ValidateAttachment(a Attachment, rules RuleSet) error {
	if !a.Kind.Valid() {
		return apperrors.ErrInvalidFileKind
	}

	ext := ExtensionOf(a.Filename)
	if ext == "" || !a.Kind.AcceptsExtension(ext) {
		return apperrors.NewCustomError(apperrors.ErrInvalidFileExtension,
			fmt.Sprintf("extension %q not allowed for kind %s (allowed: %s)",
				ext, a.Kind, strings.Join(a.Kind.AllowedExtensions(), ", ")))
	}

	if a.SizeBytes > MaxAttachmentSizeBytes {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("%s is %d bytes, maximum is %d", a.Filename, a.SizeBytes, MaxAttachmentSizeBytes))
	}

	if a.Kind.TimeBased() && a.DurationSeconds != nil {
		d := *a.DurationSeconds
		max := rules.MaxDurationSeconds(a.Kind)
		if d < MinMediaDurationSeconds || d > max {
			return apperrors.NewCustomError(apperrors.ErrDurationOutOfRange,
				fmt.Sprintf("%s duration %ds outside allowed range [%d, %d]",
					a.Kind, d, MinMediaDurationSeconds, max))
		}
	}

	return nil
}

// ValidateAttachments validates a whole submission batch: first each file on
// its own, then the rule set's required-kind check across the batch. On any
// failure nothing is attachable; the returned BatchError carries every failing
// file so the caller can fix them all at once.
func ValidateAttachments(attachments []Attachment, rules RuleSet) error {
	if len(attachments) == 0 {
		return apperrors.ErrNoFilesProvided
	}

	var batch BatchError
	provided := make([]FileKind, 0, len(attachments))
	for _, a := range attachments {
		if err := ValidateAttachment(a, rules); err != nil {
			batch.Failures = append(batch.Failures, &AttachmentError{
				Filename: a.Filename,
				Kind:     a.Kind,
				Err:      err,
			})
			continue
		}
		provided = append(provided, a.Kind)
	}
	if len(batch.Failures) > 0 {
		return &batch
	}

	if missing := rules.Missing(provided); len(missing) > 0 {
		return NewMissingKindsError(missing)
	}
	return nil
}

// MissingKindsError reports which required kinds a submission did not provide.
type MissingKindsError struct {
	Missing []FileKind
}

// NewMissingKindsError builds the error for a non-empty set difference.
func NewMissingKindsError(missing []FileKind) *MissingKindsError {
	return &MissingKindsError{Missing: missing}
}

func (e *MissingKindsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		names[i] = string(k)
	}
	return "missing required file kinds: " + strings.Join(names, ", ")
}

func (e *MissingKindsError) Unwrap() error {
	return apperrors.ErrMissingRequiredFiles
}

// AsMissingKinds extracts a MissingKindsError from an error chain.
func AsMissingKinds(err error) (*MissingKindsError, bool) {
	var mk *MissingKindsError
	ok := errors.As(err, &mk)
	return mk, ok
}
