package domain

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	maxVoiceoverTextLen = 5000
	maxLyricsLen        = 4000

	// MinMusicDurationSec and MaxMusicDurationSec bound the requested track
	// length; out-of-range requests are rejected at validation and clamped
	// again defensively before the provider call.
	MinMusicDurationSec = 3
	MaxMusicDurationSec = 280
)

// Validator checks a parsed requirement against the catalogs before a job is
// accepted. It performs no I/O and mutates nothing; a nil return means valid,
// otherwise the returned *ValidationError carries the rejection reason.
type Validator struct {
	languages *LanguageCatalog
	voices    *VoiceCatalog
}

func NewValidator(languages *LanguageCatalog, voices *VoiceCatalog) *Validator {
	return &Validator{languages: languages, voices: voices}
}

func (v *Validator) Validate(kind ServiceKind, req Requirement) error {
	switch kind {
	case ServiceDubbing:
		return v.validateDubbing(req.Dubbing)
	case ServiceVoiceover:
		return v.validateVoiceover(req.Voiceover)
	case ServiceMusicProduction:
		return v.validateMusic(req.Music)
	case ServiceVoiceRecast:
		return v.validateRecast(req.Recast)
	}
	return Invalid("unsupported service %q", string(kind))
}

func (v *Validator) validateDubbing(r *DubbingRequirement) error {
	if r == nil {
		return Invalid("missing dubbing requirement")
	}
	if strings.TrimSpace(r.VideoURL) == "" {
		return Invalid("videoUrl is required")
	}
	if !validHTTPURL(r.VideoURL) {
		return Invalid("videoUrl %q is not a valid http(s) URL", r.VideoURL)
	}
	if strings.TrimSpace(r.TargetLanguage) == "" {
		return Invalid("targetLanguage is required")
	}
	if _, ok := v.languages.Resolve(r.TargetLanguage); !ok {
		return Invalid("target language %q is not supported", r.TargetLanguage)
	}
	return nil
}

func (v *Validator) validateVoiceover(r *VoiceoverRequirement) error {
	if r == nil {
		return Invalid("missing voiceover requirement")
	}
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return Invalid("text is required")
	}
	if len(text) > maxVoiceoverTextLen {
		return Invalid("text exceeds %d characters", maxVoiceoverTextLen)
	}
	if strings.TrimSpace(r.VoiceStyle) != "" {
		if _, ok := v.voices.Resolve(r.VoiceStyle); !ok {
			return Invalid("voice style %q is not supported", r.VoiceStyle)
		}
	}
	return nil
}

func (v *Validator) validateMusic(r *MusicRequirement) error {
	if r == nil {
		return Invalid("missing musicproduction requirement")
	}
	required := []struct{ name, value string }{
		{"concept", r.Concept},
		{"genre", r.Genre},
		{"mood", r.Mood},
		{"vocalStyle", r.VocalStyle},
		{"duration", r.Duration},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return Invalid("%s is required", f.name)
		}
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(r.Duration))
	if err != nil {
		return Invalid("duration %q is not an integer", r.Duration)
	}
	if seconds < MinMusicDurationSec || seconds > MaxMusicDurationSec {
		return Invalid("duration must be between %d and %d seconds", MinMusicDurationSec, MaxMusicDurationSec)
	}
	if len(r.Lyrics) > maxLyricsLen {
		return Invalid("lyrics exceed %d characters", maxLyricsLen)
	}
	return nil
}

func (v *Validator) validateRecast(r *RecastRequirement) error {
	if r == nil {
		return Invalid("missing voicerecast requirement")
	}
	if strings.TrimSpace(r.AudioURL) == "" {
		return Invalid("audioUrl is required")
	}
	if !validHTTPURL(r.AudioURL) {
		return Invalid("audioUrl %q is not a valid http(s) URL", r.AudioURL)
	}
	if strings.TrimSpace(r.VoiceStyle) == "" {
		return Invalid("voiceStyle is required")
	}
	if _, ok := v.voices.Resolve(r.VoiceStyle); !ok {
		return Invalid("voice style %q is not supported", r.VoiceStyle)
	}
	return nil
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
