package models

import "time"

// Vote is a single (voter, candidature) endorsement. Votes are immutable once
// cast; the (candidature, voter) pair is unique at the storage layer and rows
// disappear only through cascading candidature deletion.
type Vote struct {
	ID            int64     `json:"id"`
	CandidatureID int64     `json:"candidatureId"`
	VoterID       int64     `json:"voterId"`
	CreatedAt     time.Time `json:"createdAt"`
}
