package domain

import (
	"encoding/json"
	"time"
)

type ServiceKind string

const (
	ServiceDubbing         ServiceKind = "dubbing"
	ServiceVoiceover       ServiceKind = "voiceover"
	ServiceMusicProduction ServiceKind = "musicproduction"
	ServiceVoiceRecast     ServiceKind = "voicerecast"
)

func (k ServiceKind) Known() bool {
	switch k {
	case ServiceDubbing, ServiceVoiceover, ServiceMusicProduction, ServiceVoiceRecast:
		return true
	}
	return false
}

// Phase is the job source's per-job stage indicator. Each notification
// carries the next target phase; the engine reacts to the two phases below
// and ignores everything else.
type Phase int

const (
	PhaseProposed        Phase = 1
	PhasePendingDelivery Phase = 3
)

type JobStatus string

const (
	JobStatusReceived   JobStatus = "received"
	JobStatusAccepted   JobStatus = "accepted"
	JobStatusRejected   JobStatus = "rejected"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDelivered  JobStatus = "delivered"
)

// Job is the engine's view of one notification from the job source. It is
// never persisted; only its identifier outlives it, inside the claim ledger.
type Job struct {
	ID             string
	Service        ServiceKind
	RawRequirement json.RawMessage
	Requirement    Requirement
	Phase          Phase
	Status         JobStatus
	ReceivedAt     time.Time
}

type DeliverableStatus string

const (
	DeliverableCompleted DeliverableStatus = "completed"
	DeliverableFailed    DeliverableStatus = "failed"
)

// Deliverable is the uniform fulfillment result reported back to the job
// source: a public artifact URL on success, an empty result on failure.
type Deliverable struct {
	JobID  string            `json:"jobId"`
	Status DeliverableStatus `json:"status"`
	Result string            `json:"result"`
}

func CompletedDeliverable(jobID, artifactURL string) Deliverable {
	return Deliverable{JobID: jobID, Status: DeliverableCompleted, Result: artifactURL}
}

func FailedDeliverable(jobID string) Deliverable {
	return Deliverable{JobID: jobID, Status: DeliverableFailed}
}
