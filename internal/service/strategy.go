package service

import (
	"context"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/infrastructure/logger"
)

// Strategy fulfills one accepted job. Implementations never return an error:
// every provider failure, malformed response, or timeout terminates in a
// failed Deliverable so the job source always receives exactly one result.
type Strategy interface {
	Fulfill(ctx context.Context, job *domain.Job) domain.Deliverable
}

func failJob(job *domain.Job, stage string, err error) domain.Deliverable {
	logger.Error.Printf("job %s: %s: %s", job.ID, stage, logger.SanitizeForLog(err.Error()))
	return domain.FailedDeliverable(job.ID)
}
