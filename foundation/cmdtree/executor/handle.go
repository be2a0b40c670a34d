// File: handle.go
// Title: Invocation Handles
// Description: Outcome and Handle types. A Handle is completed exactly once.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package executor

import (
	"context"
	"sync"
	"time"

	"github.com/msto63/argtree/foundation/cmdtree/tree"
)

// Outcome is the single result of an invocation
type Outcome struct {
	ID       string
	Sender   any
	Input    string
	Path     []string
	Context  *tree.Context
	Failure  *Failure
	Started  time.Time
	Finished time.Time
}

// Success reports whether the handler ran and returned nil
func (o *Outcome) Success() bool {
	return o.Failure == nil
}

// Duration returns the time between start and completion
func (o *Outcome) Duration() time.Duration {
	return o.Finished.Sub(o.Started)
}

// Kind returns the failure kind, or "success"
func (o *Outcome) Kind() string {
	if o.Failure == nil {
		return "success"
	}
	return o.Failure.Kind.String()
}

// Handle tracks a running invocation. Its outcome is set exactly once.
type Handle struct {
	id      string
	done    chan struct{}
	once    sync.Once
	outcome *Outcome
	cancel  context.CancelFunc
}

func newHandle(id string, cancel context.CancelFunc) *Handle {
	return &Handle{id: id, done: make(chan struct{}), cancel: cancel}
}

// ID returns the invocation id
func (h *Handle) ID() string { return h.id }

// Done is closed once the outcome is available
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel requests cancellation. An invocation whose handler has not started
// yet completes with KindCancelled; a running handler sees its context
// cancelled.
func (h *Handle) Cancel() { h.cancel() }

// Outcome returns the outcome, or nil while the invocation is running
func (h *Handle) Outcome() *Outcome {
	select {
	case <-h.done:
		return h.outcome
	default:
		return nil
	}
}

// Wait blocks until the outcome is available or ctx is done
func (h *Handle) Wait(ctx context.Context) (*Outcome, error) {
	select {
	case <-h.done:
		return h.outcome, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// complete stores the outcome; only the first call has an effect
func (h *Handle) complete(o *Outcome) bool {
	delivered := false
	h.once.Do(func() {
		h.outcome = o
		close(h.done)
		delivered = true
	})
	return delivered
}
