package client

import (
	"context"
	"sync"
)

// CheckFunc asks whether an email address is already taken.
type CheckFunc func(ctx context.Context, email string) (taken bool, err error)

// AvailabilityProbe runs single-flight availability checks while the
// user types an email address. Each new Check cancels the probe still
// in flight; only the most recent probe's result is ever delivered.
type AvailabilityProbe struct {
	check CheckFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewAvailabilityProbe creates a probe using the given check.
func NewAvailabilityProbe(check CheckFunc) *AvailabilityProbe {
	return &AvailabilityProbe{check: check}
}

// Check starts a probe for email and calls apply with the result,
// unless a newer Check supersedes it first. apply runs on the probe's
// goroutine; superseded and cancelled probes are dropped silently.
func (p *AvailabilityProbe) Check(ctx context.Context, email string, apply func(taken bool, err error)) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	probeCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	go func() {
		defer cancel()
		taken, err := p.check(probeCtx, email)

		p.mu.Lock()
		latest := p.seq == seq
		p.mu.Unlock()

		if !latest || probeCtx.Err() != nil {
			return
		}
		apply(taken, err)
	}()
}

// Stop cancels any probe still in flight.
func (p *AvailabilityProbe) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
