package models

import (
	"time"

	"github.com/makona/awards-backend/internal/domain"
)

// CandidatureFile is a stored attachment of a candidature: the declared media
// kind, the original filename, where the payload lives and its metadata.
type CandidatureFile struct {
	ID              int64           `json:"id"`
	CandidatureID   int64           `json:"candidatureId"`
	Kind            domain.FileKind `json:"kind"`
	FileName        string          `json:"fileName"`
	FilePath        string          `json:"filePath"`
	FileSize        int64           `json:"fileSize"`
	DurationSeconds *int            `json:"durationSeconds,omitempty"`
	Title           string          `json:"title,omitempty"`
	DisplayOrder    int             `json:"displayOrder"`
	UploadedAt      time.Time       `json:"uploadedAt"`
}
