package models

import "time"

// RoleType defines the user role type
type RoleType string

const (
	RoleCandidate RoleType = "CANDIDATE"
	RoleVoter     RoleType = "VOTER"
	RoleAdmin     RoleType = "ADMIN"
)

// User represents an account in the system. Registration/OTP flows live in an
// external directory; the backend only needs enough to own candidatures,
// cast votes and review submissions.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	RoleType     RoleType  `json:"roleType"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName returns the display name used in listings and notifications.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
