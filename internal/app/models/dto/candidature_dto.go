package dto

import "time"

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PublishRequest toggles the published flag.
type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// CandidatureFileResponse is the stored view of one attachment.
type CandidatureFileResponse struct {
	ID              int64     `json:"id"`
	Kind            string    `json:"kind"`
	FileName        string    `json:"fileName"`
	FilePath        string    `json:"filePath"`
	FileSize        int64     `json:"fileSize"`
	DurationSeconds *int      `json:"durationSeconds,omitempty"`
	Title           string    `json:"title,omitempty"`
	DisplayOrder    int       `json:"displayOrder"`
	UploadedAt      time.Time `json:"uploadedAt"`
}

// CandidatureResponse is the full candidature snapshot handed to the request
// layer: review state, publication, derived vote count and in-category rank.
type CandidatureResponse struct {
	ID              int64                     `json:"id"`
	CandidateID     int64                     `json:"candidateId"`
	CandidateName   string                    `json:"candidateName,omitempty"`
	CategoryID      int64                     `json:"categoryId"`
	CategoryName    string                    `json:"categoryName,omitempty"`
	CategorySlug    string                    `json:"categorySlug,omitempty"`
	Description     string                    `json:"description,omitempty"`
	Status          string                    `json:"status"`
	Published       bool                      `json:"published"`
	SubmittedAt     time.Time                 `json:"submittedAt"`
	ReviewedAt      *time.Time                `json:"reviewedAt,omitempty"`
	ReviewedBy      *int64                    `json:"reviewedBy,omitempty"`
	RejectionReason string                    `json:"rejectionReason,omitempty"`
	VoteCount       int                       `json:"voteCount"`
	Rank            int                       `json:"rank,omitempty"`
	CanBeModified   bool                      `json:"canBeModified"`
	Files           []CandidatureFileResponse `json:"files,omitempty"`
}

// CandidatureStatsResponse aggregates candidature totals for the admin board.
type CandidatureStatsResponse struct {
	Total      int64                   `json:"total"`
	Pending    int64                   `json:"pending"`
	Approved   int64                   `json:"approved"`
	Rejected   int64                   `json:"rejected"`
	ByCategory map[string]StatusCounts `json:"byCategory"`
}
