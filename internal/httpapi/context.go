package httpapi

import "context"

// baseCtx ends when the process is shutting down, so handlers can stop
// generation even while clients keep their connections open. Background
// until the serve loop installs its own.
var baseCtx = context.Background()

// SetBaseContext installs the process-level context consulted by handlers.
// A nil ctx resets to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		baseCtx = context.Background()
		return
	}
	baseCtx = ctx
}

// mergeCancel derives a context that ends as soon as either input does.
// Callers must invoke the returned cancel to release the watcher.
func mergeCancel(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-a.Done():
		case <-b.Done():
		}
	}()
	return ctx, cancel
}
