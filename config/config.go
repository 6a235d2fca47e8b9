package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port int

	// DataDir, when set, enables the durable claim ledger. Empty keeps the
	// ledger in memory.
	DataDir string

	// Job source callback API.
	SourceBaseURL string
	SourceAPIKey  string

	// Providers.
	DubbingBaseURL string
	DubbingAPIKey  string
	SpeechBaseURL  string
	SpeechAPIKey   string
	SpeechModel    string
	MusicBaseURL   string
	MusicAPIKey    string
	VoiceBaseURL   string
	VoiceAPIKey    string
	VoiceModel     string

	// Durable artifact storage.
	StorageEndpoint string
	StorageBucket   string
	StorageRegion   string
	StorageToken    string

	// Fulfillment tuning.
	MaxConcurrentJobs int64
	PollInterval      time.Duration
	PollMaxAttempts   int
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8480"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	maxJobs, err := strconv.ParseInt(getEnv("MAX_CONCURRENT_JOBS", "16"), 10, 64)
	if err != nil || maxJobs < 1 {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_JOBS: %v", err)
	}

	pollIntervalSec, err := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "10"))
	if err != nil || pollIntervalSec < 1 {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS: %v", err)
	}

	pollMaxAttempts, err := strconv.Atoi(getEnv("POLL_MAX_ATTEMPTS", "24"))
	if err != nil || pollMaxAttempts < 1 {
		return nil, fmt.Errorf("invalid POLL_MAX_ATTEMPTS: %v", err)
	}

	sourceBaseURL := os.Getenv("SOURCE_BASE_URL")
	if sourceBaseURL == "" {
		return nil, fmt.Errorf("SOURCE_BASE_URL is required")
	}

	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET is required")
	}

	return &Config{
		Port:    port,
		DataDir: os.Getenv("DATA_DIR"),

		SourceBaseURL: sourceBaseURL,
		SourceAPIKey:  os.Getenv("SOURCE_API_KEY"),

		DubbingBaseURL: getEnv("DUBBING_BASE_URL", "https://api.dubwire.dev"),
		DubbingAPIKey:  os.Getenv("DUBBING_API_KEY"),
		SpeechBaseURL:  getEnv("SPEECH_BASE_URL", "https://api.speechkit.dev"),
		SpeechAPIKey:   os.Getenv("SPEECH_API_KEY"),
		SpeechModel:    getEnv("SPEECH_MODEL", "multilingual-v2"),
		MusicBaseURL:   getEnv("MUSIC_BASE_URL", "https://api.tunegen.dev"),
		MusicAPIKey:    os.Getenv("MUSIC_API_KEY"),
		VoiceBaseURL:   getEnv("VOICE_BASE_URL", "https://api.voxmorph.dev"),
		VoiceAPIKey:    os.Getenv("VOICE_API_KEY"),
		VoiceModel:     getEnv("VOICE_MODEL", "voice-conversion-v1"),

		StorageEndpoint: getEnv("STORAGE_ENDPOINT", ""),
		StorageBucket:   bucket,
		StorageRegion:   getEnv("STORAGE_REGION", "us-east-1"),
		StorageToken:    os.Getenv("STORAGE_TOKEN"),

		MaxConcurrentJobs: maxJobs,
		PollInterval:      time.Duration(pollIntervalSec) * time.Second,
		PollMaxAttempts:   pollMaxAttempts,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
