package models

import "time"

// CandidatureStatus is the review state of a candidature.
type CandidatureStatus string

const (
	StatusPending  CandidatureStatus = "pending"
	StatusApproved CandidatureStatus = "approved"
	StatusRejected CandidatureStatus = "rejected"
)

// Valid reports whether the status is one of the known states.
func (s CandidatureStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Candidature is a candidate's application to a single category. At most one
// candidature exists per (candidate, category) pair. ReviewedAt and ReviewedBy
// are set together, exactly when the status leaves pending; Published is an
// orthogonal admin flag meaningful only while approved.
type Candidature struct {
	ID              int64             `json:"id"`
	CandidateID     int64             `json:"candidateId"`
	CategoryID      int64             `json:"categoryId"`
	Description     string            `json:"description"`
	Status          CandidatureStatus `json:"status"`
	Published       bool              `json:"published"`
	SubmittedAt     time.Time         `json:"submittedAt"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty"`
	ReviewedBy      *int64            `json:"reviewedBy,omitempty"`
	RejectionReason string            `json:"rejectionReason,omitempty"`

	// Relations
	Candidate *User              `json:"candidate,omitempty"`
	Category  *Category          `json:"category,omitempty"`
	Reviewer  *User              `json:"reviewer,omitempty"`
	Files     []*CandidatureFile `json:"files,omitempty"`
}

// CanBeModified reports whether the candidate may still change files or
// description. Holds exactly while the candidature is pending.
func (c *Candidature) CanBeModified() bool {
	return c.Status == StatusPending
}

// IsVotable reports whether the candidature may receive votes: it must have
// been approved and published.
func (c *Candidature) IsVotable() bool {
	return c.Status == StatusApproved && c.Published
}
