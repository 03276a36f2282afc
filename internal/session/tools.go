package session

import (
	"context"
	"encoding/json"

	"genbridge/internal/toolcall"
	"genbridge/pkg/types"
)

// toolSet binds prepared tools to a live session, choosing the host hookup:
// the request's own callback when supplied, otherwise a parked host whose
// continuations are resolved out-of-band through ResolveToolCall.
func (r *Registry) toolSet(s *liveSession, w *work, host toolcall.Host) map[string]*toolcall.Tool {
	set := make(map[string]*toolcall.Tool, len(w.tools))
	for _, pt := range w.tools {
		h := host
		if h == nil {
			h = parkedHost
		}
		set[pt.spec.Name] = toolcall.New(pt.spec.ID, pt.spec.Name, pt.spec.Description, pt.params, h)
	}
	return set
}

// parkedHost leaves the continuation suspended. The call was already entered
// into the session's pending table, so ResolveToolCall can complete it from
// any goroutine.
func parkedHost(toolID, args string, cont *toolcall.Continuation) {}

// toolCallFunc adapts a tool set into the runtime callback. Each invocation
// suspends the generating task on its continuation; cancellation is checked
// before the suspension resumes. notify, when non-nil, observes the pending
// call before the host runs (streaming sessions surface it as an update).
func (r *Registry) toolCallFunc(s *liveSession, set map[string]*toolcall.Tool, notify func(types.ToolCallEvent, *toolcall.Continuation) error) ToolCallFunc {
	return func(ctx context.Context, toolName string, args json.RawMessage) (string, error) {
		tool, ok := set[toolName]
		if !ok {
			return "", toolcall.ErrToolInvocation("unknown tool: " + toolName)
		}
		serialized, err := toolcall.SerializeArgs(args)
		if err != nil {
			return "", toolcall.ErrToolInvocation(err.Error())
		}
		// Register before any notification goes out so a resolution racing in
		// over HTTP always finds the continuation.
		cont := toolcall.NewContinuation()
		r.mu.Lock()
		s.pending[cont.ID()] = pendingCall{cont: cont, tool: tool.Name}
		r.mu.Unlock()
		defer func() {
			r.mu.Lock()
			delete(s.pending, cont.ID())
			r.mu.Unlock()
		}()
		if notify != nil {
			ev := types.ToolCallEvent{
				CallID:   cont.ID(),
				ToolID:   tool.ID,
				ToolName: tool.Name,
				Input:    serialized,
			}
			if err := notify(ev, cont); err != nil {
				return "", err
			}
		}
		r.log.Debug().Str("session_id", s.id).Str("tool", toolName).Str("call_id", cont.ID()).Msg("tool invoked")
		r.pub.Publish(Event{Name: EventToolInvoked, SessionID: s.id, Fields: map[string]any{"tool": toolName}})
		return tool.InvokeWith(ctx, cont, args)
	}
}
