package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/infrastructure/logger"
	"github.com/soundforge/seller/internal/port"
)

// evaluationMessage is the fixed confirmation sent with every positive
// evaluation verdict.
const evaluationMessage = "Job fulfilled and artifact delivered as agreed."

// Engine drives the accept/fulfill/evaluate protocol. It owns phase
// interpretation and the claim ledger; each accepted job is fulfilled by an
// independent goroutine so a slow dub never blocks other jobs.
type Engine struct {
	source     port.JobSource
	validator  *domain.Validator
	strategies map[domain.ServiceKind]Strategy
	claims     port.ClaimStore
	sem        *semaphore.Weighted
	wg         sync.WaitGroup
}

func NewEngine(
	source port.JobSource,
	validator *domain.Validator,
	strategies map[domain.ServiceKind]Strategy,
	claims port.ClaimStore,
	maxConcurrentJobs int64,
) *Engine {
	if maxConcurrentJobs < 1 {
		maxConcurrentJobs = 1
	}
	return &Engine{
		source:     source,
		validator:  validator,
		strategies: strategies,
		claims:     claims,
		sem:        semaphore.NewWeighted(maxConcurrentJobs),
	}
}

// HandleNotification reacts to one notification from the job source.
// Proposed jobs are validated and answered synchronously; pending-delivery
// jobs are claimed and fulfilled in the background. Unrecognized phases are
// ignored without any callback.
func (e *Engine) HandleNotification(ctx context.Context, n port.Notification) {
	switch n.Phase {
	case domain.PhaseProposed:
		e.handleProposed(ctx, n)
	case domain.PhasePendingDelivery:
		e.handlePendingDelivery(ctx, n)
	default:
		logger.Debug.Printf("job %s: ignoring phase %d", n.JobID, n.Phase)
	}
}

func (e *Engine) handleProposed(ctx context.Context, n port.Notification) {
	kind := domain.ServiceKind(n.Service)

	reason := ""
	req, err := domain.ParseRequirement(kind, n.Requirement)
	if err != nil {
		reason = err.Error()
	} else if err := e.validator.Validate(kind, req); err != nil {
		reason = err.Error()
	}

	if reason != "" {
		logger.Info.Printf("job %s: rejected: %s", n.JobID, logger.SanitizeForLog(reason))
		if err := e.source.AcceptOrReject(ctx, n.JobID, false, reason); err != nil {
			logger.Error.Printf("job %s: rejection callback failed: %v", n.JobID, err)
		}
		return
	}

	logger.Info.Printf("job %s: accepted (%s)", n.JobID, kind)
	if err := e.source.AcceptOrReject(ctx, n.JobID, true, ""); err != nil {
		logger.Error.Printf("job %s: acceptance callback failed: %v", n.JobID, err)
	}
}

func (e *Engine) handlePendingDelivery(ctx context.Context, n port.Notification) {
	claimed, err := e.claims.TryClaim(n.JobID)
	if err != nil {
		logger.Error.Printf("job %s: claim failed: %v", n.JobID, err)
		return
	}
	if !claimed {
		logger.Debug.Printf("job %s: already claimed, skipping duplicate notification", n.JobID)
		return
	}

	kind := domain.ServiceKind(n.Service)
	strategy, ok := e.strategies[kind]
	if !ok {
		reason := "unsupported service " + n.Service
		logger.Warn.Printf("job %s: %s", n.JobID, logger.SanitizeForLog(reason))
		if err := e.source.AcceptOrReject(ctx, n.JobID, false, reason); err != nil {
			logger.Error.Printf("job %s: rejection callback failed: %v", n.JobID, err)
		}
		return
	}

	job := &domain.Job{
		ID:             n.JobID,
		Service:        kind,
		RawRequirement: n.Requirement,
		Phase:          n.Phase,
		Status:         domain.JobStatusProcessing,
		ReceivedAt:     time.Now(),
	}

	req, err := domain.ParseRequirement(kind, n.Requirement)
	if err != nil {
		// The requirement was valid at acceptance; a decode failure here
		// still owes the source exactly one deliverable.
		logger.Error.Printf("job %s: requirement decode at dispatch: %v", n.JobID, err)
		e.deliver(context.WithoutCancel(ctx), domain.FailedDeliverable(n.JobID))
		return
	}
	job.Requirement = req

	// Fulfillment outlives the notification's request context.
	jobCtx := context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		if err := e.sem.Acquire(jobCtx, 1); err != nil {
			logger.Error.Printf("job %s: acquire worker slot: %v", job.ID, err)
			e.deliver(jobCtx, domain.FailedDeliverable(job.ID))
			return
		}
		defer e.sem.Release(1)

		logger.Info.Printf("job %s: processing (%s)", job.ID, job.Service)
		deliverable := strategy.Fulfill(jobCtx, job)
		e.deliver(jobCtx, deliverable)
	}()
}

func (e *Engine) deliver(ctx context.Context, d domain.Deliverable) {
	if err := e.source.Deliver(ctx, d.JobID, d); err != nil {
		// Delivery callback errors are logged and never retried; the claim
		// stays in place so the job is not fulfilled twice.
		logger.Error.Printf("job %s: delivery callback failed: %v", d.JobID, err)
		return
	}
	logger.Info.Printf("job %s: delivered (%s)", d.JobID, d.Status)
}

// HandleEvaluation reports a positive verdict once the job source signals
// that a job reached its terminal phase. Failures are logged, not retried,
// and never roll back an already-reported deliverable.
func (e *Engine) HandleEvaluation(ctx context.Context, jobID string) {
	if err := e.source.Evaluate(ctx, jobID, true, evaluationMessage); err != nil {
		logger.Error.Printf("job %s: evaluation callback failed: %v", jobID, err)
		return
	}
	logger.Info.Printf("job %s: evaluation submitted", jobID)
}

// Wait blocks until all in-flight fulfillments have delivered.
func (e *Engine) Wait() {
	e.wg.Wait()
}
