package service

import (
	"context"
	"errors"
	"sync"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

type acceptCall struct {
	JobID  string
	Accept bool
	Reason string
}

type evaluateCall struct {
	JobID   string
	Verdict bool
	Message string
}

type fakeSource struct {
	mu          sync.Mutex
	accepts     []acceptCall
	deliveries  []domain.Deliverable
	evaluations []evaluateCall
	deliverErr  error
	evaluateErr error
}

func (f *fakeSource) AcceptOrReject(_ context.Context, jobID string, accept bool, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepts = append(f.accepts, acceptCall{JobID: jobID, Accept: accept, Reason: reason})
	return nil
}

func (f *fakeSource) Deliver(_ context.Context, jobID string, d domain.Deliverable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, d)
	return f.deliverErr
}

func (f *fakeSource) Evaluate(_ context.Context, jobID string, verdict bool, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evaluations = append(f.evaluations, evaluateCall{JobID: jobID, Verdict: verdict, Message: message})
	return f.evaluateErr
}

func (f *fakeSource) acceptCalls() []acceptCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]acceptCall(nil), f.accepts...)
}

func (f *fakeSource) delivered() []domain.Deliverable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Deliverable(nil), f.deliveries...)
}

func (f *fakeSource) evaluated() []evaluateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]evaluateCall(nil), f.evaluations...)
}

type fakeDubber struct {
	mu          sync.Mutex
	startErr    error
	providerJob string
	statuses    []port.DubStatus
	statusCalls int
	audio       []byte
	contentType string
	audioErr    error
}

func (f *fakeDubber) StartDub(_ context.Context, videoURL, targetLanguageCode string) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	return f.providerJob, nil
}

func (f *fakeDubber) DubStatus(_ context.Context, providerJobID string) (port.DubStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.statusCalls
	f.statusCalls++
	if idx >= len(f.statuses) {
		return f.statuses[len(f.statuses)-1], nil
	}
	return f.statuses[idx], nil
}

func (f *fakeDubber) DubbedAudio(_ context.Context, providerJobID, languageCode string) ([]byte, string, error) {
	if f.audioErr != nil {
		return nil, "", f.audioErr
	}
	return f.audio, f.contentType, nil
}

type fakeSynthesizer struct {
	audio       []byte
	err         error
	calls       int
	lastText    string
	lastVoiceID string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text, voiceID string) ([]byte, error) {
	f.calls++
	f.lastText = text
	f.lastVoiceID = voiceID
	return f.audio, f.err
}

type fakeGenerator struct {
	audio            []byte
	err              error
	lastPrompt       string
	lastDurationMs   int
	lastInstrumental bool
}

func (f *fakeGenerator) GenerateMusic(_ context.Context, prompt string, durationMs int, instrumental bool) ([]byte, error) {
	f.lastPrompt = prompt
	f.lastDurationMs = durationMs
	f.lastInstrumental = instrumental
	return f.audio, f.err
}

type fakeConverter struct {
	audio       []byte
	err         error
	calls       int
	lastVoiceID string
}

func (f *fakeConverter) ConvertVoice(_ context.Context, audio []byte, filename, voiceID string) ([]byte, error) {
	f.calls++
	f.lastVoiceID = voiceID
	return f.audio, f.err
}

type fakeFetcher struct {
	data        []byte
	contentType string
	err         error
}

func (f *fakeFetcher) FetchAudio(_ context.Context, url string, maxBytes int64) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if int64(len(f.data)) > maxBytes {
		return nil, "", errors.New("source audio exceeds size limit")
	}
	return f.data, f.contentType, nil
}

type putCall struct {
	Key         string
	ContentType string
	Size        int
}

type fakeArtifacts struct {
	mu      sync.Mutex
	baseURL string
	err     error
	puts    []putCall
}

func (f *fakeArtifacts) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.puts = append(f.puts, putCall{Key: key, ContentType: contentType, Size: len(data)})
	base := f.baseURL
	if base == "" {
		base = "https://artifacts.test"
	}
	return base + "/" + key, nil
}

func (f *fakeArtifacts) putCalls() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall(nil), f.puts...)
}

type fakeStrategy struct {
	mu     sync.Mutex
	calls  int
	result func(job *domain.Job) domain.Deliverable
}

func (f *fakeStrategy) Fulfill(_ context.Context, job *domain.Job) domain.Deliverable {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.result != nil {
		return f.result(job)
	}
	return domain.CompletedDeliverable(job.ID, "https://artifacts.test/"+job.ID)
}

func (f *fakeStrategy) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
