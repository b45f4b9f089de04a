package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileKind(t *testing.T) {
	tests := []struct {
		input   string
		want    FileKind
		wantErr bool
	}{
		{"photo", KindPhoto, false},
		{"Photo", KindPhoto, false},
		{" VIDEO ", KindVideo, false},
		{"audio", KindAudio, false},
		{"portfolio", KindPortfolio, false},
		{"document", KindDocument, false},
		{"documents", KindDocument, false}, // legacy plural
		{"image", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFileKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAcceptsExtension(t *testing.T) {
	assert.True(t, KindPhoto.AcceptsExtension("jpg"))
	assert.True(t, KindPhoto.AcceptsExtension("WEBP"))
	assert.False(t, KindPhoto.AcceptsExtension("exe"))
	assert.True(t, KindVideo.AcceptsExtension("mkv"))
	assert.False(t, KindVideo.AcceptsExtension("mp3"))
	assert.True(t, KindAudio.AcceptsExtension("flac"))
	assert.True(t, KindPortfolio.AcceptsExtension("7z"))
	assert.True(t, KindDocument.AcceptsExtension("xlsx"))
	assert.False(t, KindDocument.AcceptsExtension("zip"))
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "jpg", ExtensionOf("IMG_0130.JPG"))
	assert.Equal(t, "gz", ExtensionOf("archive.tar.gz"))
	assert.Equal(t, "", ExtensionOf("noextension"))
	assert.Equal(t, "", ExtensionOf("trailingdot."))
}

func TestTimeBased(t *testing.T) {
	assert.True(t, KindVideo.TimeBased())
	assert.True(t, KindAudio.TimeBased())
	assert.False(t, KindPhoto.TimeBased())
	assert.False(t, KindPortfolio.TimeBased())
	assert.False(t, KindDocument.TimeBased())
}
