package session

import (
	"context"
	"sync"
	"time"
)

// acquireSlot reserves one of the bounded concurrent-session slots.
// Returns a release func safe to call more than once.
func (r *Registry) acquireSlot(ctx context.Context) (func(), error) {
	select {
	case r.slots <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-r.slots }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.maxWait):
		return nil, ErrSessionLimit()
	}
}
