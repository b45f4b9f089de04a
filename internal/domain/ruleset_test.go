package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSetMissing(t *testing.T) {
	// "Music" style category requiring photo, video and audio.
	rules := NewRuleSet(KindPhoto, KindVideo, KindAudio)

	tests := []struct {
		name     string
		provided []FileKind
		missing  []FileKind
	}{
		{
			name:     "all provided",
			provided: []FileKind{KindPhoto, KindVideo, KindAudio},
			missing:  nil,
		},
		{
			name:     "duplicates within a kind still count once",
			provided: []FileKind{KindPhoto, KindPhoto, KindVideo, KindAudio},
			missing:  nil,
		},
		{
			name:     "audio missing",
			provided: []FileKind{KindPhoto, KindVideo},
			missing:  []FileKind{KindAudio},
		},
		{
			name:     "extra kinds do not substitute",
			provided: []FileKind{KindPhoto, KindDocument, KindPortfolio},
			missing:  []FileKind{KindVideo, KindAudio},
		},
		{
			name:     "nothing provided",
			provided: nil,
			missing:  []FileKind{KindPhoto, KindVideo, KindAudio},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, rules.Missing(tt.provided))
		})
	}
}

func TestRuleSetRequiredKindsStableOrder(t *testing.T) {
	rules := NewRuleSet(KindDocument, KindPhoto, KindAudio)
	assert.Equal(t, []FileKind{KindPhoto, KindAudio, KindDocument}, rules.RequiredKinds())
	assert.True(t, rules.Requires(KindPhoto))
	assert.False(t, rules.Requires(KindVideo))
}

func TestRuleSetMaxDurationSeconds(t *testing.T) {
	t.Run("global caps apply by default", func(t *testing.T) {
		rules := NewRuleSet(KindVideo)
		assert.Equal(t, MaxVideoDurationSeconds, rules.MaxDurationSeconds(KindVideo))
		assert.Equal(t, MaxAudioDurationSeconds, rules.MaxDurationSeconds(KindAudio))
		assert.Equal(t, 0, rules.MaxDurationSeconds(KindPhoto))
	})

	t.Run("tighter category cap wins", func(t *testing.T) {
		rules := NewRuleSet(KindVideo).WithDurationCaps(120, 60)
		assert.Equal(t, 120, rules.MaxDurationSeconds(KindVideo))
		assert.Equal(t, 60, rules.MaxDurationSeconds(KindAudio))
	})

	t.Run("looser category cap is ignored", func(t *testing.T) {
		rules := NewRuleSet(KindVideo).WithDurationCaps(7200, 3600)
		assert.Equal(t, MaxVideoDurationSeconds, rules.MaxDurationSeconds(KindVideo))
		assert.Equal(t, MaxAudioDurationSeconds, rules.MaxDurationSeconds(KindAudio))
	})
}
