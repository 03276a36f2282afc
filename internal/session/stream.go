package session

import (
	"context"

	"genbridge/internal/toolcall"
	"genbridge/pkg/types"
)

// Stream starts a streaming session and returns its id plus the ordered
// update channel. All construction work happens synchronously, so schema,
// transcript and options errors are returned here and no session is created.
// The channel carries chunks in generation order, then exactly one Done or
// Err update, and is closed when the task exits. A cancelled session closes
// the channel without a terminal update.
func (r *Registry) Stream(req Request) (string, <-chan Update, error) {
	if !r.runtime.Ready() {
		return "", nil, ErrModelUnavailable("runtime not ready")
	}
	w, err := r.prepare(req)
	if err != nil {
		return "", nil, err
	}
	release, err := r.acquireSlot(context.Background())
	if err != nil {
		return "", nil, err
	}
	// The session outlives the Start call; its lifetime is bounded by
	// Cancel/Shutdown, not by the caller's context.
	sctx, cancel := context.WithCancel(context.Background())
	s := r.newSession(KindStreaming, cancel)
	s.updates = make(chan Update, r.chunkBuffer)
	r.register(s)
	go r.runStream(sctx, s, w, req.ToolHost, release)
	return s.id, s.updates, nil
}

// runStream drives one streaming session to a terminal state and removes
// the registry entry before returning. Losing the removal race to a cancel
// suppresses the terminal update.
func (r *Registry) runStream(ctx context.Context, s *liveSession, w *work, host toolcall.Host, release func()) {
	defer close(s.done)
	defer close(s.updates)
	defer release()

	push := func(u Update) error {
		select {
		case s.updates <- u:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	rs, err := r.runtime.Open()
	if err != nil {
		if r.remove(s.id) {
			_ = push(Update{Err: ErrGeneration(err)})
			r.pub.Publish(Event{Name: EventFailed, SessionID: s.id, Fields: map[string]any{"state": string(StateFailed), "error": err.Error()}})
		}
		return
	}
	defer func() { _ = rs.Close() }()

	invoke := r.toolCallFunc(s, r.toolSet(s, w, host), func(ev types.ToolCallEvent, _ *toolcall.Continuation) error {
		return push(Update{ToolCall: &ev})
	})
	onChunk := func(chunk string) error {
		return push(Update{Chunk: chunk})
	}

	_, err = rs.Generate(ctx, w.runtimeRequest(), onChunk, invoke)
	won := r.remove(s.id)
	if !won || ctx.Err() != nil {
		// Cancelled: the entry is already gone and no further event may
		// surface for this session.
		return
	}
	if err != nil {
		if !toolcall.IsToolInvocation(err) && !toolcall.IsUnknownToolResult(err) {
			err = ErrGeneration(err)
		}
		r.log.Info().Str("session_id", s.id).Err(err).Msg("stream failed")
		r.pub.Publish(Event{Name: EventFailed, SessionID: s.id, Fields: map[string]any{"state": string(StateFailed), "error": err.Error()}})
		_ = push(Update{Err: err})
		return
	}
	r.log.Info().Str("session_id", s.id).Msg("stream completed")
	r.pub.Publish(Event{Name: EventCompleted, SessionID: s.id, Fields: map[string]any{"state": string(StateCompleted)}})
	_ = push(Update{Done: true})
}
