package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPollTimeout is returned when a provider job does not reach a
	// terminal state within the poll budget.
	ErrPollTimeout = errors.New("provider job did not finish in time")

	// ErrUnknownService is returned when a notification names a service
	// this worker does not offer.
	ErrUnknownService = errors.New("unknown service")
)

// ValidationError rejects a requirement before any provider call is made.
// Its message is surfaced verbatim to the job source as the rejection reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ProviderError normalizes any non-success response or malformed payload
// from an external provider.
type ProviderError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Detail)
}
