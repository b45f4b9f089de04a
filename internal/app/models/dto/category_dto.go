package dto

import "time"

// CreateCategoryRequest is the admin payload for creating or updating a category.
// An empty slug is derived from the name.
type CreateCategoryRequest struct {
	ClassID           *int64 `json:"classId"`
	Name              string `json:"name" binding:"required,max=100"`
	Slug              string `json:"slug" binding:"omitempty,max=100"`
	Description       string `json:"description" binding:"max=500"`
	IsActive          *bool  `json:"isActive"`
	RequiresPhoto     bool   `json:"requiresPhoto"`
	RequiresVideo     bool   `json:"requiresVideo"`
	RequiresAudio     bool   `json:"requiresAudio"`
	RequiresPortfolio bool   `json:"requiresPortfolio"`
	RequiresDocuments bool   `json:"requiresDocuments"`
	MaxVideoDuration  *int   `json:"maxVideoDuration" binding:"omitempty,min=1,max=3600"`
	MaxAudioDuration  *int   `json:"maxAudioDuration" binding:"omitempty,min=1,max=1800"`
}

// CategoryResponse is the public view of a category, including its computed
// required-kind set.
type CategoryResponse struct {
	ID               int64     `json:"id"`
	ClassID          *int64    `json:"classId,omitempty"`
	ClassName        string    `json:"className,omitempty"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	IsActive         bool      `json:"isActive"`
	RequiredKinds    []string  `json:"requiredKinds"`
	MaxVideoDuration *int      `json:"maxVideoDuration,omitempty"`
	MaxAudioDuration *int      `json:"maxAudioDuration,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CategoryStatsResponse summarizes a category's candidatures and votes.
type CategoryStatsResponse struct {
	Category     CategoryResponse `json:"category"`
	Candidatures StatusCounts     `json:"candidatures"`
	TotalVotes   int64            `json:"totalVotes"`
}

// StatusCounts breaks candidature totals down by review status.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// SetActiveRequest toggles the active flag of a category.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CreateCategoryClassRequest is the admin payload for category classes.
type CreateCategoryClassRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Slug         string `json:"slug" binding:"omitempty,max=100"`
	Description  string `json:"description" binding:"max=200"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}
