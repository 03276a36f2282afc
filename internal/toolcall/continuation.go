// Package toolcall bridges model-initiated tool invocations to a
// host-supplied asynchronous callback, suspending the owning generation task
// until the host resolves or rejects a single-use continuation.
package toolcall

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrAlreadyResolved is returned by Resolve/Reject after the first outcome
// has been recorded. A duplicate resolution is a host programming error and
// fails loudly rather than being silently ignored.
var ErrAlreadyResolved = errors.New("continuation already resolved")

type outcome struct {
	value any
	err   error
}

// Continuation is a single-use capability to complete a pending tool call.
// Exactly one of Resolve/Reject may be called, exactly once, from any
// goroutine; the host is not required to be on any particular thread.
type Continuation struct {
	id   string
	mu   sync.Mutex
	done bool
	ch   chan outcome
}

// NewContinuation creates an unresolved continuation with a fresh id.
func NewContinuation() *Continuation {
	return &Continuation{
		id: uuid.NewString(),
		ch: make(chan outcome, 1),
	}
}

// ID identifies this pending call, e.g. for out-of-band resolution.
func (c *Continuation) ID() string { return c.id }

// Resolve completes the call with a host value. Returns ErrAlreadyResolved
// on a second resolution.
func (c *Continuation) Resolve(value any) error {
	return c.complete(outcome{value: value})
}

// Reject completes the call with a host error. Returns ErrAlreadyResolved
// on a second resolution.
func (c *Continuation) Reject(err error) error {
	if err == nil {
		err = errors.New("tool rejected without a reason")
	}
	return c.complete(outcome{err: err})
}

func (c *Continuation) complete(o outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return ErrAlreadyResolved
	}
	c.done = true
	c.ch <- o
	return nil
}

// Await suspends until the continuation is completed or ctx is cancelled.
// On rejection the host error is returned as-is; cancellation returns the
// context error.
func (c *Continuation) Await(ctx context.Context) (any, error) {
	select {
	case o := <-c.ch:
		return o.value, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
