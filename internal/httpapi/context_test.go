package httpapi

import (
	"context"
	"testing"
	"time"
)

func TestSetBaseContext_NilResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	SetBaseContext(ctx)
	if baseCtx.Err() == nil {
		t.Fatal("installed context not picked up")
	}
	SetBaseContext(nil)
	if baseCtx.Err() != nil {
		t.Fatal("nil did not reset to Background")
	}
}

func TestMergeCancel_EitherSideEnds(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	b, cancelB := context.WithCancel(context.Background())
	merged, cancel := mergeCancel(a, b)
	defer cancel()
	select {
	case <-merged.Done():
		t.Fatal("merged context ended early")
	case <-time.After(10 * time.Millisecond):
	}
	cancelB()
	select {
	case <-merged.Done():
	case <-time.After(time.Second):
		t.Fatal("merged context did not end after input cancel")
	}
}
