// Package pacer spaces out successive calls to an external resource.
package pacer

import "time"

// Pacer blocks until enough time has passed since the previous call.
type Pacer interface {
	Wait()
}

// FixedDelay enforces a fixed minimum gap between calls. It is the politeness
// delay used between backfill page fetches; the backoff is deliberately not
// adaptive. Not safe for concurrent use; each backfill run owns its own
// instance.
type FixedDelay struct {
	delay time.Duration
	last  time.Time
}

// NewFixedDelay creates a FixedDelay pacer with the given gap.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

// Wait sleeps until at least the configured delay has elapsed since the last
// call. The first call returns immediately.
func (p *FixedDelay) Wait() {
	if !p.last.IsZero() {
		if elapsed := time.Since(p.last); elapsed < p.delay {
			time.Sleep(p.delay - elapsed)
		}
	}
	p.last = time.Now()
}
