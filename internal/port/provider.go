package port

import "context"

// DubStatus is the dubbing provider's reported job state. Anything other
// than the two terminal values means the dub is still in progress.
type DubStatus string

const (
	DubStatusDubbed DubStatus = "dubbed"
	DubStatusFailed DubStatus = "failed"
)

func (s DubStatus) Terminal() bool {
	return s == DubStatusDubbed || s == DubStatusFailed
}

// Dubber wraps the asynchronous dubbing provider.
type Dubber interface {
	// StartDub submits a video for dubbing and returns the provider's job
	// handle. Source language detection is left to the provider.
	StartDub(ctx context.Context, videoURL, targetLanguageCode string) (providerJobID string, err error)
	// DubStatus fetches the current state of a dubbing job.
	DubStatus(ctx context.Context, providerJobID string) (DubStatus, error)
	// DubbedAudio downloads the finished asset for one language track.
	DubbedAudio(ctx context.Context, providerJobID, languageCode string) (data []byte, contentType string, err error)
}

// SpeechSynthesizer wraps the synchronous text-to-speech provider.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (audio []byte, err error)
}

// MusicGenerator wraps the synchronous music generation provider.
type MusicGenerator interface {
	GenerateMusic(ctx context.Context, prompt string, durationMs int, instrumental bool) (audio []byte, err error)
}

// VoiceConverter wraps the voice conversion provider (multipart upload).
type VoiceConverter interface {
	ConvertVoice(ctx context.Context, audio []byte, filename, voiceID string) (converted []byte, err error)
}

// AudioFetcher downloads caller-supplied source audio. Implementations
// enforce a size ceiling and fail rather than buffer oversized payloads.
type AudioFetcher interface {
	FetchAudio(ctx context.Context, url string, maxBytes int64) (data []byte, contentType string, err error)
}
