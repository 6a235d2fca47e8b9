package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memorystore "github.com/soundforge/seller/internal/adapter/storage/memory"
	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

func newTestEngine(source *fakeSource, strategy Strategy) *Engine {
	languages := domain.NewLanguageCatalog(domain.DefaultLanguages())
	voices := domain.NewDefaultVoiceCatalog()
	validator := domain.NewValidator(languages, voices)

	strategies := map[domain.ServiceKind]Strategy{}
	if strategy != nil {
		for _, kind := range []domain.ServiceKind{
			domain.ServiceDubbing,
			domain.ServiceVoiceover,
			domain.ServiceMusicProduction,
			domain.ServiceVoiceRecast,
		} {
			strategies[kind] = strategy
		}
	}

	return NewEngine(source, validator, strategies, memorystore.NewClaimStore(), 4)
}

func notification(jobID, serviceName string, phase domain.Phase, requirement string) port.Notification {
	return port.Notification{
		JobID:       jobID,
		Service:     serviceName,
		Requirement: json.RawMessage(requirement),
		Phase:       phase,
	}
}

func TestEngine_Proposed_AcceptsValidJob(t *testing.T) {
	source := &fakeSource{}
	engine := newTestEngine(source, &fakeStrategy{})

	engine.HandleNotification(context.Background(),
		notification("job-1", "dubbing", domain.PhaseProposed,
			`{"videoUrl":"https://x/video.mp4","targetLanguage":"Spanish"}`))

	calls := source.acceptCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "job-1", calls[0].JobID)
	assert.True(t, calls[0].Accept)
	assert.Empty(t, calls[0].Reason)
}

func TestEngine_Proposed_RejectsInvalidRequirement(t *testing.T) {
	strategy := &fakeStrategy{}
	source := &fakeSource{}
	engine := newTestEngine(source, strategy)

	engine.HandleNotification(context.Background(),
		notification("job-2", "voiceover", domain.PhaseProposed, `{"text":""}`))

	calls := source.acceptCalls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Accept)
	assert.Contains(t, calls[0].Reason, "text")
	assert.Zero(t, strategy.callCount(), "no strategy dispatch for a rejected job")
	assert.Empty(t, source.delivered())
}

func TestEngine_Proposed_RejectsUnknownService(t *testing.T) {
	source := &fakeSource{}
	engine := newTestEngine(source, &fakeStrategy{})

	engine.HandleNotification(context.Background(),
		notification("job-3", "holograms", domain.PhaseProposed, `{}`))

	calls := source.acceptCalls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Accept)
	assert.Contains(t, calls[0].Reason, "holograms")
}

func TestEngine_PendingDelivery_DispatchesAndDelivers(t *testing.T) {
	strategy := &fakeStrategy{}
	source := &fakeSource{}
	engine := newTestEngine(source, strategy)

	engine.HandleNotification(context.Background(),
		notification("job-4", "voiceover", domain.PhasePendingDelivery, `{"text":"hello"}`))
	engine.Wait()

	assert.Equal(t, 1, strategy.callCount())
	deliveries := source.delivered()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "job-4", deliveries[0].JobID)
	assert.Equal(t, domain.DeliverableCompleted, deliveries[0].Status)
}

func TestEngine_PendingDelivery_DuplicateNotificationIsNoOp(t *testing.T) {
	strategy := &fakeStrategy{}
	source := &fakeSource{}
	engine := newTestEngine(source, strategy)

	n := notification("job-5", "voiceover", domain.PhasePendingDelivery, `{"text":"hello"}`)
	engine.HandleNotification(context.Background(), n)
	engine.HandleNotification(context.Background(), n)
	engine.Wait()

	assert.Equal(t, 1, strategy.callCount(), "duplicate notification must not dispatch again")
	assert.Len(t, source.delivered(), 1, "only one delivery callback per job")
}

func TestEngine_PendingDelivery_ConcurrentDuplicates(t *testing.T) {
	strategy := &fakeStrategy{}
	source := &fakeSource{}
	engine := newTestEngine(source, strategy)

	n := notification("job-6", "voiceover", domain.PhasePendingDelivery, `{"text":"hello"}`)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine.HandleNotification(context.Background(), n)
		}()
	}
	wg.Wait()
	engine.Wait()

	assert.Equal(t, 1, strategy.callCount())
	assert.Len(t, source.delivered(), 1)
}

func TestEngine_PendingDelivery_UnknownServiceRejected(t *testing.T) {
	source := &fakeSource{}
	engine := newTestEngine(source, nil)

	engine.HandleNotification(context.Background(),
		notification("job-7", "holograms", domain.PhasePendingDelivery, `{}`))
	engine.Wait()

	assert.Empty(t, source.delivered())
	calls := source.acceptCalls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Accept)
	assert.Contains(t, calls[0].Reason, "holograms")
}

func TestEngine_UnrecognizedPhaseIgnored(t *testing.T) {
	strategy := &fakeStrategy{}
	source := &fakeSource{}
	engine := newTestEngine(source, strategy)

	engine.HandleNotification(context.Background(),
		notification("job-8", "voiceover", domain.Phase(7), `{"text":"hello"}`))
	engine.Wait()

	assert.Empty(t, source.acceptCalls())
	assert.Empty(t, source.delivered())
	assert.Zero(t, strategy.callCount())
}

func TestEngine_FailedStrategyStillDelivers(t *testing.T) {
	strategy := &fakeStrategy{result: func(job *domain.Job) domain.Deliverable {
		return domain.FailedDeliverable(job.ID)
	}}
	source := &fakeSource{}
	engine := newTestEngine(source, strategy)

	engine.HandleNotification(context.Background(),
		notification("job-9", "voiceover", domain.PhasePendingDelivery, `{"text":"hello"}`))
	engine.Wait()

	deliveries := source.delivered()
	require.Len(t, deliveries, 1)
	assert.Equal(t, domain.DeliverableFailed, deliveries[0].Status)
	assert.Empty(t, deliveries[0].Result)
}

func TestEngine_HandleEvaluation(t *testing.T) {
	source := &fakeSource{}
	engine := newTestEngine(source, &fakeStrategy{})

	engine.HandleEvaluation(context.Background(), "job-10")

	evals := source.evaluated()
	require.Len(t, evals, 1)
	assert.Equal(t, "job-10", evals[0].JobID)
	assert.True(t, evals[0].Verdict)
	assert.NotEmpty(t, evals[0].Message)
}

func TestEngine_EvaluationFailureIsNotRetried(t *testing.T) {
	source := &fakeSource{evaluateErr: assert.AnError}
	engine := newTestEngine(source, &fakeStrategy{})

	engine.HandleEvaluation(context.Background(), "job-11")

	assert.Len(t, source.evaluated(), 1, "single attempt, no retry")
}

func TestEngine_DeliveryCallbackFailureKeepsClaim(t *testing.T) {
	strategy := &fakeStrategy{}
	source := &fakeSource{deliverErr: assert.AnError}
	engine := newTestEngine(source, strategy)

	n := notification("job-12", "voiceover", domain.PhasePendingDelivery, `{"text":"hello"}`)
	engine.HandleNotification(context.Background(), n)
	engine.Wait()

	// A failed delivery callback must not reopen the job for reprocessing.
	engine.HandleNotification(context.Background(), n)
	engine.Wait()

	assert.Equal(t, 1, strategy.callCount())
	assert.Len(t, source.delivered(), 1)
}
