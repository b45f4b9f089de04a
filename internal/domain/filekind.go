package domain

import (
	"strings"

	"github.com/makona/awards-backend/internal/pkg/apperrors"
)

// FileKind is the declared media kind of a candidature attachment.
type FileKind string

const (
	KindPhoto     FileKind = "photo"
	KindVideo     FileKind = "video"
	KindAudio     FileKind = "audio"
	KindPortfolio FileKind = "portfolio"
	KindDocument  FileKind = "document"
)

// AllKinds lists every valid kind in display order.
var AllKinds = []FileKind{KindPhoto, KindVideo, KindAudio, KindPortfolio, KindDocument}

// Global duration ceilings in seconds. A category may impose a tighter cap,
// never a looser one.
const (
	MinMediaDurationSeconds = 1
	MaxVideoDurationSeconds = 3600
	MaxAudioDurationSeconds = 1800
)

// MaxAttachmentSizeBytes is the hard per-file size ceiling (10 MiB).
const MaxAttachmentSizeBytes = 10 * 1024 * 1024

var allowedExtensions = map[FileKind][]string{
	KindPhoto:     {"jpg", "jpeg", "png", "gif", "webp", "bmp", "tiff"},
	KindVideo:     {"mp4", "avi", "mov", "wmv", "flv", "webm", "mkv", "m4v"},
	KindAudio:     {"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a"},
	KindPortfolio: {"pdf", "doc", "docx", "ppt", "pptx", "zip", "rar", "7z"},
	KindDocument:  {"pdf", "doc", "docx", "txt", "rtf", "odt", "xls", "xlsx", "ppt", "pptx"},
}

// ParseFileKind converts a wire value into a FileKind. The original API used
// the plural "documents" for the document kind, so both spellings are accepted.
func ParseFileKind(s string) (FileKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "photo":
		return KindPhoto, nil
	case "video":
		return KindVideo, nil
	case "audio":
		return KindAudio, nil
	case "portfolio":
		return KindPortfolio, nil
	case "document", "documents":
		return KindDocument, nil
	default:
		return "", apperrors.NewCustomError(apperrors.ErrInvalidFileKind, "unknown file kind: "+s)
	}
}

// Valid reports whether the kind is one of the known kinds.
func (k FileKind) Valid() bool {
	_, ok := allowedExtensions[k]
	return ok
}

// TimeBased reports whether the kind carries a duration (video/audio).
func (k FileKind) TimeBased() bool {
	return k == KindVideo || k == KindAudio
}

// AllowedExtensions returns the extension allow-list for the kind.
func (k FileKind) AllowedExtensions() []string {
	return allowedExtensions[k]
}

// AcceptsExtension reports whether ext (without the dot, any case) is on the
// kind's allow-list.
func (k FileKind) AcceptsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range allowedExtensions[k] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// GlobalMaxDurationSeconds returns the hard duration ceiling for a time-based
// kind, or 0 for kinds that have none.
func (k FileKind) GlobalMaxDurationSeconds() int {
	switch k {
	case KindVideo:
		return MaxVideoDurationSeconds
	case KindAudio:
		return MaxAudioDurationSeconds
	default:
		return 0
	}
}

// ExtensionOf extracts the last dot-delimited segment of a filename, lowered.
// Returns "" when the filename has no extension.
func ExtensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
