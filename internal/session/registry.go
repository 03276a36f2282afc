package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"genbridge/internal/toolcall"
	"genbridge/pkg/types"
)

// Request is one generation request, one-shot or streaming.
type Request struct {
	// Messages is the conversation history; must end with a user message.
	Messages []types.ChatMessage
	// Options carries sampling/length parameters, tools, and the optional
	// output schema.
	Options types.RequestOptions
	// ToolHost receives tool invocations. When nil, invocations park in the
	// registry's pending table and are completed via ResolveToolCall.
	ToolHost toolcall.Host
}

// Registry owns in-flight sessions. All map access is serialized under mu so
// that a cancel racing a natural completion resolves deterministically: the
// first remover wins and the loser's terminal signal is dropped.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*liveSession

	runtime     Runtime
	maxSessions int
	maxWait     time.Duration
	chunkBuffer int
	slots       chan struct{}
	log         zerolog.Logger
	pub         EventPublisher
}

// Ready reports whether the underlying model runtime can serve.
func (r *Registry) Ready() bool { return r.runtime.Ready() }

// Count returns the number of in-flight sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Status builds a status report for the host surface.
func (r *Registry) Status() types.StatusResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp := types.StatusResponse{
		MaxSessions: r.maxSessions,
		Ready:       r.runtime.Ready(),
	}
	resp.Sessions = make([]types.SessionStatus, 0, len(r.sessions))
	for _, s := range r.sessions {
		var calls []types.PendingToolCall
		for id, pc := range s.pending {
			calls = append(calls, types.PendingToolCall{CallID: id, ToolName: pc.tool})
		}
		sort.Slice(calls, func(i, j int) bool { return calls[i].CallID < calls[j].CallID })
		resp.Sessions = append(resp.Sessions, types.SessionStatus{
			SessionID:        s.id,
			Kind:             string(s.kind),
			State:            string(StateRunning),
			StartedAt:        s.startedAt.Unix(),
			PendingToolCalls: len(s.pending),
			PendingCalls:     calls,
		})
	}
	return resp
}

// Cancel requests cooperative cancellation of a session and removes its
// entry immediately, reporting whether the id was live. Cancelling an
// unknown or already-terminated id is a no-op. No completion or update event
// fires for the session afterwards; in-flight native work may still run to a
// stop point.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	s.cancel()
	r.log.Info().Str("session_id", id).Msg("session cancelled")
	r.pub.Publish(Event{Name: EventCancelled, SessionID: id, Fields: map[string]any{"state": string(StateCancelled)}})
	return true
}

// ResolveToolCall completes a pending tool continuation out-of-band. A
// non-empty rejectMsg rejects the call instead of resolving it. Completing
// an already-completed call returns toolcall.ErrAlreadyResolved.
func (r *Registry) ResolveToolCall(sessionID, callID string, value any, rejectMsg string) error {
	r.mu.Lock()
	var cont *toolcall.Continuation
	if s, ok := r.sessions[sessionID]; ok {
		cont = s.pending[callID].cont
	}
	r.mu.Unlock()
	if cont == nil {
		return ErrPendingCallNotFound(sessionID, callID)
	}
	if rejectMsg != "" {
		return cont.Reject(errors.New(rejectMsg))
	}
	return cont.Resolve(value)
}

// Shutdown cancels every live session and waits for their tasks to exit,
// bounded by ctx.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	live := make([]*liveSession, 0, len(r.sessions))
	for id, s := range r.sessions {
		delete(r.sessions, id)
		live = append(live, s)
	}
	r.mu.Unlock()
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range live {
		s.cancel()
		done := s.done
		g.Go(func() error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// register inserts a fresh session and announces it.
func (r *Registry) register(s *liveSession) {
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	r.log.Debug().Str("session_id", s.id).Str("kind", string(s.kind)).Msg("session started")
	r.pub.Publish(Event{Name: EventStarted, SessionID: s.id, Fields: map[string]any{"kind": string(s.kind)}})
}

// remove deletes a session entry if still present and reports whether this
// caller won the removal race. A losing completion must suppress its
// terminal signal.
func (r *Registry) remove(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	return ok
}

func (r *Registry) newSession(kind Kind, cancel context.CancelFunc) *liveSession {
	return &liveSession{
		id:        uuid.NewString(),
		kind:      kind,
		startedAt: time.Now(),
		cancel:    cancel,
		pending:   make(map[string]pendingCall),
		done:      make(chan struct{}),
	}
}
