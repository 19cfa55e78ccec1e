package checkout

import (
	"context"
	"sync/atomic"
)

// Starter is the slice of Client that Handoff needs; tests stub it.
type Starter interface {
	Begin(ctx context.Context, lines []Line, countryCode string) (string, error)
}

// Handoff guards one cart's checkout against duplicate submission. A second
// Begin while the first is still in flight is ignored with ErrPending, not
// queued. The cart itself is left populated on success: navigating away is
// the implicit transaction-pending state.
type Handoff struct {
	starter Starter
	pending atomic.Bool
}

func NewHandoff(starter Starter) *Handoff {
	return &Handoff{starter: starter}
}

func (h *Handoff) Begin(ctx context.Context, lines []Line, countryCode string) (string, error) {
	if !h.pending.CompareAndSwap(false, true) {
		return "", ErrPending
	}
	defer h.pending.Store(false)
	return h.starter.Begin(ctx, lines, countryCode)
}
