package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Requirement is a tagged union keyed by service kind. Exactly one member is
// non-nil after a successful ParseRequirement.
type Requirement struct {
	Dubbing   *DubbingRequirement
	Voiceover *VoiceoverRequirement
	Music     *MusicRequirement
	Recast    *RecastRequirement
}

type DubbingRequirement struct {
	VideoURL       string
	TargetLanguage string
}

type VoiceoverRequirement struct {
	Text       string
	VoiceStyle string
}

type MusicRequirement struct {
	Concept    string
	Genre      string
	Mood       string
	VocalStyle string
	Duration   string
	Lyrics     string
}

type RecastRequirement struct {
	AudioURL   string
	VoiceStyle string
}

// ParseRequirement decodes the raw requirement payload for the given service
// into its canonical form. Legacy field spellings that older buyers still
// send (snake_case variants of the URL fields) are normalized here so that
// validation and the strategies only ever see one name per concept.
func ParseRequirement(kind ServiceKind, raw json.RawMessage) (Requirement, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}

	switch kind {
	case ServiceDubbing:
		var body struct {
			VideoURL       string `json:"videoUrl"`
			VideoURLAlt    string `json:"video_url"`
			TargetLanguage string `json:"targetLanguage"`
			TargetLangAlt  string `json:"target_lang"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return Requirement{}, fmt.Errorf("decode dubbing requirement: %w", err)
		}
		return Requirement{Dubbing: &DubbingRequirement{
			VideoURL:       firstNonEmpty(body.VideoURL, body.VideoURLAlt),
			TargetLanguage: firstNonEmpty(body.TargetLanguage, body.TargetLangAlt),
		}}, nil

	case ServiceVoiceover:
		var body struct {
			Text       string `json:"text"`
			VoiceStyle string `json:"voiceStyle"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return Requirement{}, fmt.Errorf("decode voiceover requirement: %w", err)
		}
		return Requirement{Voiceover: &VoiceoverRequirement{
			Text:       body.Text,
			VoiceStyle: body.VoiceStyle,
		}}, nil

	case ServiceMusicProduction:
		var body struct {
			Concept    string      `json:"concept"`
			Genre      string      `json:"genre"`
			Mood       string      `json:"mood"`
			VocalStyle string      `json:"vocalStyle"`
			Duration   json.Number `json:"duration"`
			Lyrics     string      `json:"lyrics"`
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			// Buyers have sent duration both as a number and as a quoted
			// string; retry with the string shape before giving up.
			var alt struct {
				Concept    string `json:"concept"`
				Genre      string `json:"genre"`
				Mood       string `json:"mood"`
				VocalStyle string `json:"vocalStyle"`
				Duration   string `json:"duration"`
				Lyrics     string `json:"lyrics"`
			}
			if err2 := json.Unmarshal(raw, &alt); err2 != nil {
				return Requirement{}, fmt.Errorf("decode musicproduction requirement: %w", err)
			}
			return Requirement{Music: &MusicRequirement{
				Concept:    alt.Concept,
				Genre:      alt.Genre,
				Mood:       alt.Mood,
				VocalStyle: alt.VocalStyle,
				Duration:   strings.TrimSpace(alt.Duration),
				Lyrics:     alt.Lyrics,
			}}, nil
		}
		return Requirement{Music: &MusicRequirement{
			Concept:    body.Concept,
			Genre:      body.Genre,
			Mood:       body.Mood,
			VocalStyle: body.VocalStyle,
			Duration:   body.Duration.String(),
			Lyrics:     body.Lyrics,
		}}, nil

	case ServiceVoiceRecast:
		var body struct {
			AudioURL    string `json:"audioUrl"`
			AudioURLAlt string `json:"audio_url"`
			VoiceStyle  string `json:"voiceStyle"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return Requirement{}, fmt.Errorf("decode voicerecast requirement: %w", err)
		}
		return Requirement{Recast: &RecastRequirement{
			AudioURL:   firstNonEmpty(body.AudioURL, body.AudioURLAlt),
			VoiceStyle: body.VoiceStyle,
		}}, nil
	}

	return Requirement{}, fmt.Errorf("%w: %s", ErrUnknownService, kind)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
