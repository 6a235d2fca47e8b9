package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

// MaxRecastSourceBytes caps the source audio a buyer can submit for voice
// conversion. The fetch fails before the conversion provider is called.
const MaxRecastSourceBytes = 25 << 20 // 25 MiB

// RecastStrategy downloads the buyer's source audio, converts it to the
// requested voice, and uploads the result.
type RecastStrategy struct {
	voices    *domain.VoiceCatalog
	fetcher   port.AudioFetcher
	converter port.VoiceConverter
	artifacts port.ArtifactStore
}

func NewRecastStrategy(voices *domain.VoiceCatalog, fetcher port.AudioFetcher, converter port.VoiceConverter, artifacts port.ArtifactStore) *RecastStrategy {
	return &RecastStrategy{
		voices:    voices,
		fetcher:   fetcher,
		converter: converter,
		artifacts: artifacts,
	}
}

func (s *RecastStrategy) Fulfill(ctx context.Context, job *domain.Job) domain.Deliverable {
	req := job.Requirement.Recast
	if req == nil {
		return failJob(job, "voicerecast", errors.New("requirement missing"))
	}

	source, _, err := s.fetcher.FetchAudio(ctx, req.AudioURL, MaxRecastSourceBytes)
	if err != nil {
		return failJob(job, "fetch source audio", err)
	}

	voiceID := s.voices.ResolveOrDefault(req.VoiceStyle)

	converted, err := s.converter.ConvertVoice(ctx, source, "source_audio", voiceID)
	if err != nil {
		return failJob(job, "convert voice", err)
	}

	key := fmt.Sprintf("recasts/%s.mp3", job.ID)
	artifactURL, err := s.artifacts.Put(ctx, key, converted, "audio/mpeg")
	if err != nil {
		return failJob(job, "upload artifact", err)
	}

	return domain.CompletedDeliverable(job.ID, artifactURL)
}
