package port

import (
	"context"
	"encoding/json"

	"github.com/soundforge/seller/internal/domain"
)

// Notification is one inbound message from the job source. Phase is the next
// target phase the source wants the job moved to.
type Notification struct {
	JobID       string          `json:"jobId"`
	Service     string          `json:"serviceName"`
	Requirement json.RawMessage `json:"requirement"`
	Phase       domain.Phase    `json:"phase"`
}

// JobSource exposes the three callback operations of the job source's
// protocol. Implementations wrap one network call each and must be safe for
// concurrent use.
type JobSource interface {
	AcceptOrReject(ctx context.Context, jobID string, accept bool, reason string) error
	Deliver(ctx context.Context, jobID string, d domain.Deliverable) error
	Evaluate(ctx context.Context, jobID string, verdict bool, message string) error
}
