package domain

import "strings"

// knownExtensions maps provider response content types to the file extension
// used for the stored artifact key.
var knownExtensions = map[string]string{
	"audio/mpeg":      ".mp3",
	"audio/mp3":       ".mp3",
	"audio/wav":       ".wav",
	"audio/wave":      ".wav",
	"audio/x-wav":     ".wav",
	"audio/ogg":       ".ogg",
	"application/ogg": ".ogg",
	"audio/flac":      ".flac",
	"audio/x-flac":    ".flac",
	"audio/aac":       ".aac",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// DefaultExtension is used when the provider's content type is missing or
// unrecognized. Dub audio is served as MP3 by every provider we integrate.
const DefaultExtension = ".mp3"

// ExtensionForContentType infers an artifact file extension from an HTTP
// content type. Parameters ("; charset=...") are ignored.
func ExtensionForContentType(contentType string) string {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if ext, ok := knownExtensions[mime]; ok {
		return ext
	}
	return DefaultExtension
}
