package domain

import "strings"

// LanguageCatalog maps human-readable language names and ISO-style codes to
// the code the dubbing provider expects. Built once at startup and never
// mutated; lookups are case-insensitive over both code and name.
type LanguageCatalog struct {
	byKey map[string]Language
	all   []Language
}

type Language struct {
	Code string
	Name string
}

func NewLanguageCatalog(languages []Language) *LanguageCatalog {
	c := &LanguageCatalog{
		byKey: make(map[string]Language, len(languages)*2),
		all:   make([]Language, len(languages)),
	}
	copy(c.all, languages)
	for _, l := range languages {
		c.byKey[strings.ToLower(l.Code)] = l
		c.byKey[strings.ToLower(l.Name)] = l
	}
	return c
}

// Resolve returns the provider code for a language given by code or name.
func (c *LanguageCatalog) Resolve(codeOrName string) (string, bool) {
	l, ok := c.byKey[strings.ToLower(strings.TrimSpace(codeOrName))]
	if !ok {
		return "", false
	}
	return l.Code, true
}

func (c *LanguageCatalog) Len() int {
	return len(c.all)
}

// DefaultLanguages is the dubbing provider's supported set.
func DefaultLanguages() []Language {
	return []Language{
		{Code: "en", Name: "English"},
		{Code: "hi", Name: "Hindi"},
		{Code: "pt", Name: "Portuguese"},
		{Code: "zh", Name: "Chinese"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "de", Name: "German"},
		{Code: "ja", Name: "Japanese"},
		{Code: "ar", Name: "Arabic"},
		{Code: "ru", Name: "Russian"},
		{Code: "ko", Name: "Korean"},
		{Code: "id", Name: "Indonesian"},
		{Code: "it", Name: "Italian"},
		{Code: "nl", Name: "Dutch"},
		{Code: "tr", Name: "Turkish"},
		{Code: "pl", Name: "Polish"},
		{Code: "sv", Name: "Swedish"},
		{Code: "fil", Name: "Filipino"},
		{Code: "ms", Name: "Malay"},
		{Code: "ro", Name: "Romanian"},
		{Code: "uk", Name: "Ukrainian"},
		{Code: "el", Name: "Greek"},
		{Code: "cs", Name: "Czech"},
		{Code: "da", Name: "Danish"},
		{Code: "fi", Name: "Finnish"},
		{Code: "bg", Name: "Bulgarian"},
		{Code: "hr", Name: "Croatian"},
		{Code: "sk", Name: "Slovak"},
		{Code: "ta", Name: "Tamil"},
	}
}

// VoiceCatalog maps voice style names to provider voice identifiers.
// Unresolved styles fall back to the default voice rather than failing.
type VoiceCatalog struct {
	byStyle      map[string]string
	defaultVoice string
}

type Voice struct {
	Style string
	ID    string
}

func NewVoiceCatalog(voices []Voice, defaultVoiceID string) *VoiceCatalog {
	c := &VoiceCatalog{
		byStyle:      make(map[string]string, len(voices)),
		defaultVoice: defaultVoiceID,
	}
	for _, v := range voices {
		c.byStyle[strings.ToLower(v.Style)] = v.ID
	}
	return c
}

// Resolve returns the provider voice ID for a style name.
func (c *VoiceCatalog) Resolve(style string) (string, bool) {
	id, ok := c.byStyle[strings.ToLower(strings.TrimSpace(style))]
	return id, ok
}

// ResolveOrDefault resolves a style name, falling back to the default voice
// when the style is absent or unknown.
func (c *VoiceCatalog) ResolveOrDefault(style string) string {
	if id, ok := c.Resolve(style); ok {
		return id
	}
	return c.defaultVoice
}

func (c *VoiceCatalog) DefaultVoice() string {
	return c.defaultVoice
}

const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

func DefaultVoices() []Voice {
	return []Voice{
		{Style: "narrator", ID: defaultVoiceID},
		{Style: "warm", ID: "EXAVITQu4vr4xnSDxMaL"},
		{Style: "energetic", ID: "ErXwobaYiN019PkySvjV"},
		{Style: "deep", ID: "TxGEqnHWrfWFTfGW9XjX"},
		{Style: "calm", ID: "XB0fDUnXU5powFXDhCwa"},
		{Style: "bright", ID: "MF3mGyEYCl7XYWbV9V6O"},
		{Style: "authoritative", ID: "VR6AewLTigWG4xSOukaG"},
	}
}

// NewDefaultVoiceCatalog builds the stock catalog with "narrator" as the
// fallback voice.
func NewDefaultVoiceCatalog() *VoiceCatalog {
	return NewVoiceCatalog(DefaultVoices(), defaultVoiceID)
}
