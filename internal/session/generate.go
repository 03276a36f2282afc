package session

import (
	"context"
	"encoding/json"
	"strings"

	"genbridge/internal/toolcall"
	"genbridge/pkg/types"
)

// Generate runs a one-shot session to a single final answer: text segments
// interleaved with any tool calls the model made along the way. The session
// is registered for its duration, so it shows up in Status and can be
// cancelled or have tool calls resolved out-of-band.
func (r *Registry) Generate(ctx context.Context, req Request) (types.GenerateResponse, error) {
	var zero types.GenerateResponse
	if !r.runtime.Ready() {
		return zero, ErrModelUnavailable("runtime not ready")
	}
	w, err := r.prepare(req)
	if err != nil {
		return zero, err
	}
	release, err := r.acquireSlot(ctx)
	if err != nil {
		return zero, err
	}
	defer release()

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s := r.newSession(KindOneShot, cancel)
	r.register(s)
	defer close(s.done)

	rs, err := r.runtime.Open()
	if err != nil {
		r.remove(s.id)
		return zero, ErrGeneration(err)
	}
	defer func() { _ = rs.Close() }()

	var segs []types.Segment
	var buf strings.Builder
	flushText := func() {
		if buf.Len() > 0 {
			segs = append(segs, types.Segment{Type: types.SegmentText, Text: buf.String()})
			buf.Reset()
		}
	}
	invoke := r.toolCallFunc(s, r.toolSet(s, w, req.ToolHost), nil)
	onToolCall := func(ctx context.Context, toolName string, args json.RawMessage) (string, error) {
		flushText()
		input, _ := toolcall.SerializeArgs(args)
		segs = append(segs, types.Segment{Type: types.SegmentToolCall, ToolName: toolName, Input: input})
		out, err := invoke(ctx, toolName, args)
		if err != nil {
			return "", err
		}
		segs = append(segs, types.Segment{Type: types.SegmentToolResult, ToolName: toolName, Output: out})
		return out, nil
	}
	onChunk := func(chunk string) error {
		if err := sctx.Err(); err != nil {
			return err
		}
		buf.WriteString(chunk)
		return nil
	}

	final, err := rs.Generate(sctx, w.runtimeRequest(), onChunk, onToolCall)
	won := r.remove(s.id)
	if err != nil {
		if sctx.Err() != nil {
			// Cancelled, by Cancel (which already removed and announced the
			// session) or by the caller's context.
			return zero, sctx.Err()
		}
		if won {
			r.log.Info().Str("session_id", s.id).Err(err).Msg("one-shot failed")
			r.pub.Publish(Event{Name: EventFailed, SessionID: s.id, Fields: map[string]any{"state": string(StateFailed), "error": err.Error()}})
		}
		if toolcall.IsToolInvocation(err) || toolcall.IsUnknownToolResult(err) {
			return zero, err
		}
		return zero, ErrGeneration(err)
	}
	flushText()
	if len(segs) == 0 && final.Content != "" {
		segs = append(segs, types.Segment{Type: types.SegmentText, Text: final.Content})
	}
	r.log.Info().Str("session_id", s.id).Int("segments", len(segs)).Msg("one-shot completed")
	r.pub.Publish(Event{Name: EventCompleted, SessionID: s.id, Fields: map[string]any{"state": string(StateCompleted)}})
	return types.GenerateResponse{Segments: segs}, nil
}
