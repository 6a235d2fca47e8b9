package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

const instrumentalVocalStyle = "instrumental"

// MusicStrategy composes a structured generation prompt from the requirement
// and calls the music provider synchronously.
type MusicStrategy struct {
	generator port.MusicGenerator
	artifacts port.ArtifactStore
}

func NewMusicStrategy(generator port.MusicGenerator, artifacts port.ArtifactStore) *MusicStrategy {
	return &MusicStrategy{generator: generator, artifacts: artifacts}
}

func (s *MusicStrategy) Fulfill(ctx context.Context, job *domain.Job) domain.Deliverable {
	req := job.Requirement.Music
	if req == nil {
		return failJob(job, "musicproduction", errors.New("requirement missing"))
	}

	prompt := buildMusicPrompt(req)
	durationMs := clampDurationSeconds(req.Duration) * 1000
	instrumental := strings.EqualFold(strings.TrimSpace(req.VocalStyle), instrumentalVocalStyle)

	audio, err := s.generator.GenerateMusic(ctx, prompt, durationMs, instrumental)
	if err != nil {
		return failJob(job, "generate music", err)
	}

	key := fmt.Sprintf("tracks/%s.mp3", job.ID)
	artifactURL, err := s.artifacts.Put(ctx, key, audio, "audio/mpeg")
	if err != nil {
		return failJob(job, "upload artifact", err)
	}

	return domain.CompletedDeliverable(job.ID, artifactURL)
}

// buildMusicPrompt embeds every requirement field in a fixed template. When
// the buyer supplied lyrics they are used verbatim; otherwise the provider is
// told to write original lyrics matching the theme.
func buildMusicPrompt(req *domain.MusicRequirement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce a %s track. Concept: %s. Mood: %s. Vocal style: %s.",
		req.Genre, req.Concept, req.Mood, req.VocalStyle)
	if strings.TrimSpace(req.Lyrics) != "" {
		fmt.Fprintf(&b, " Use these lyrics verbatim: %s", req.Lyrics)
	} else {
		b.WriteString(" Write original lyrics matching the theme.")
	}
	return b.String()
}

// clampDurationSeconds bounds the requested duration. Validation already
// rejected out-of-range values; the clamp keeps the provider call safe even
// if a strategy is ever invoked directly.
func clampDurationSeconds(raw string) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return domain.MinMusicDurationSec
	}
	if seconds < domain.MinMusicDurationSec {
		return domain.MinMusicDurationSec
	}
	if seconds > domain.MaxMusicDurationSec {
		return domain.MaxMusicDurationSec
	}
	return seconds
}
