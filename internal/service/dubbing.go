package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/infrastructure/logger"
	"github.com/soundforge/seller/internal/port"
)

// DubbingStrategy submits a video for dubbing, waits for the provider to
// finish through the poller, then uploads the dubbed track under a key
// derived from the provider job handle and language code.
type DubbingStrategy struct {
	languages *domain.LanguageCatalog
	dubber    port.Dubber
	artifacts port.ArtifactStore
	poller    *Poller
}

func NewDubbingStrategy(languages *domain.LanguageCatalog, dubber port.Dubber, artifacts port.ArtifactStore, poller *Poller) *DubbingStrategy {
	return &DubbingStrategy{
		languages: languages,
		dubber:    dubber,
		artifacts: artifacts,
		poller:    poller,
	}
}

func (s *DubbingStrategy) Fulfill(ctx context.Context, job *domain.Job) domain.Deliverable {
	req := job.Requirement.Dubbing
	if req == nil {
		return failJob(job, "dubbing", errors.New("requirement missing"))
	}

	langCode, ok := s.languages.Resolve(req.TargetLanguage)
	if !ok {
		return failJob(job, "dubbing", fmt.Errorf("unsupported target language %q", req.TargetLanguage))
	}

	providerJobID, err := s.dubber.StartDub(ctx, req.VideoURL, langCode)
	if err != nil {
		return failJob(job, "start dub", err)
	}
	logger.Info.Printf("job %s: dub started, provider job %s", job.ID, providerJobID)

	status, err := s.poller.Await(ctx, func(ctx context.Context) (port.DubStatus, error) {
		return s.dubber.DubStatus(ctx, providerJobID)
	})
	if err != nil {
		return failJob(job, "await dub", err)
	}
	if status != port.DubStatusDubbed {
		return failJob(job, "await dub", fmt.Errorf("provider reported status %q", status))
	}

	data, contentType, err := s.dubber.DubbedAudio(ctx, providerJobID, langCode)
	if err != nil {
		return failJob(job, "fetch dubbed audio", err)
	}

	ext := domain.ExtensionForContentType(contentType)
	key := fmt.Sprintf("dubs/%s_%s%s", providerJobID, langCode, ext)
	artifactURL, err := s.artifacts.Put(ctx, key, data, contentType)
	if err != nil {
		return failJob(job, "upload artifact", err)
	}

	return domain.CompletedDeliverable(job.ID, artifactURL)
}
