package models

import (
	"time"

	"github.com/makona/awards-backend/internal/domain"
)

// CategoryClass groups categories by theme (Social, Culture, Innovation, ...).
type CategoryClass struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" binding:"required"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Category is an award classification with its own required-media rules.
// A category is soft-disabled via IsActive, never hard-deleted while
// candidatures reference it.
type Category struct {
	ID          int64  `json:"id"`
	ClassID     *int64 `json:"classId,omitempty"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`

	// Required-file configuration
	RequiresPhoto     bool `json:"requiresPhoto"`
	RequiresVideo     bool `json:"requiresVideo"`
	RequiresAudio     bool `json:"requiresAudio"`
	RequiresPortfolio bool `json:"requiresPortfolio"`
	RequiresDocuments bool `json:"requiresDocuments"`

	// Optional duration caps in seconds; nil leaves the global cap in force.
	MaxVideoDuration *int `json:"maxVideoDuration,omitempty"`
	MaxAudioDuration *int `json:"maxAudioDuration,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Class *CategoryClass `json:"class,omitempty"`
}

// RequiredKinds returns the enumerated capability set of the category,
// evaluated once per read instead of scattered flag checks.
func (c *Category) RequiredKinds() []domain.FileKind {
	var kinds []domain.FileKind
	if c.RequiresPhoto {
		kinds = append(kinds, domain.KindPhoto)
	}
	if c.RequiresVideo {
		kinds = append(kinds, domain.KindVideo)
	}
	if c.RequiresAudio {
		kinds = append(kinds, domain.KindAudio)
	}
	if c.RequiresPortfolio {
		kinds = append(kinds, domain.KindPortfolio)
	}
	if c.RequiresDocuments {
		kinds = append(kinds, domain.KindDocument)
	}
	return kinds
}

// RuleSet builds the submission rule set for this category, carrying the
// category's duration caps when set.
func (c *Category) RuleSet() domain.RuleSet {
	maxVideo, maxAudio := 0, 0
	if c.MaxVideoDuration != nil {
		maxVideo = *c.MaxVideoDuration
	}
	if c.MaxAudioDuration != nil {
		maxAudio = *c.MaxAudioDuration
	}
	return domain.NewRuleSet(c.RequiredKinds()...).WithDurationCaps(maxVideo, maxAudio)
}
