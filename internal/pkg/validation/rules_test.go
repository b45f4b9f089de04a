package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Best Music Artist":    "best-music-artist",
		"  Young  Innovator  ": "young-innovator",
		"Arts & Culture":       "arts-culture",
		"déjà vu":              "d-j-vu",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestSlugPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.Slug.MatchString("best-music-artist"))
	assert.True(t, CompiledPatterns.Slug.MatchString("x"))
	assert.False(t, CompiledPatterns.Slug.MatchString("Best-Music"))
	assert.False(t, CompiledPatterns.Slug.MatchString("double--dash"))
	assert.False(t, CompiledPatterns.Slug.MatchString("-leading"))
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.Email.MatchString("voter@makona.awards"))
	assert.False(t, CompiledPatterns.Email.MatchString("not-an-email"))
}
