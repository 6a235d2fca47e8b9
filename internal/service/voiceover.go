package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

// VoiceoverStrategy synthesizes speech for the requested text. Absent or
// unknown voice styles fall back to the catalog's default voice.
type VoiceoverStrategy struct {
	voices      *domain.VoiceCatalog
	synthesizer port.SpeechSynthesizer
	artifacts   port.ArtifactStore
}

func NewVoiceoverStrategy(voices *domain.VoiceCatalog, synthesizer port.SpeechSynthesizer, artifacts port.ArtifactStore) *VoiceoverStrategy {
	return &VoiceoverStrategy{
		voices:      voices,
		synthesizer: synthesizer,
		artifacts:   artifacts,
	}
}

func (s *VoiceoverStrategy) Fulfill(ctx context.Context, job *domain.Job) domain.Deliverable {
	req := job.Requirement.Voiceover
	if req == nil {
		return failJob(job, "voiceover", errors.New("requirement missing"))
	}

	voiceID := s.voices.ResolveOrDefault(req.VoiceStyle)

	audio, err := s.synthesizer.Synthesize(ctx, req.Text, voiceID)
	if err != nil {
		return failJob(job, "synthesize speech", err)
	}

	key := fmt.Sprintf("voiceovers/%s.mp3", job.ID)
	artifactURL, err := s.artifacts.Put(ctx, key, audio, "audio/mpeg")
	if err != nil {
		return failJob(job, "upload artifact", err)
	}

	return domain.CompletedDeliverable(job.ID, artifactURL)
}
