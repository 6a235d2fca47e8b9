package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/soundforge/seller/internal/domain"
	"github.com/soundforge/seller/internal/port"
)

const (
	// DefaultPollInterval and DefaultPollMaxAttempts give long-running
	// provider jobs a 4-minute deadline before the strategy gives up.
	DefaultPollInterval    = 10 * time.Second
	DefaultPollMaxAttempts = 24
)

// Poller converts an asynchronous provider job into a synchronous result by
// polling its status at a fixed interval with a bounded attempt budget. It
// holds no shared state; each Await call is scoped to one job.
type Poller struct {
	interval    time.Duration
	maxAttempts int
}

func NewPoller(interval time.Duration, maxAttempts int) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultPollMaxAttempts
	}
	return &Poller{interval: interval, maxAttempts: maxAttempts}
}

// Await polls fetch until it reports a terminal status, returning that
// status. Fetch errors and in-progress statuses both consume an attempt;
// when the budget runs out without a terminal status the result is
// ErrPollTimeout. The wait between attempts suspends only this goroutine.
func (p *Poller) Await(ctx context.Context, fetch func(context.Context) (port.DubStatus, error)) (port.DubStatus, error) {
	var terminal port.DubStatus

	backoff := retry.WithMaxRetries(uint64(p.maxAttempts-1), retry.NewConstant(p.interval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, err := fetch(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		if status.Terminal() {
			terminal = status
			return nil
		}
		return retry.RetryableError(fmt.Errorf("status %q is not terminal", status))
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: gave up after %d attempts: %v", domain.ErrPollTimeout, p.maxAttempts, err)
	}
	return terminal, nil
}
