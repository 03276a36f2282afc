package session

import (
	"context"
	"time"

	"genbridge/internal/toolcall"
	"genbridge/pkg/types"
)

// Kind distinguishes one-shot from streaming sessions.
type Kind string

const (
	KindOneShot   Kind = "one_shot"
	KindStreaming Kind = "streaming"
)

// State is a session lifecycle state. Running is the only state visible in
// status reports; a session leaves the registry the moment it becomes
// terminal, and the terminal state travels on its lifecycle event instead.
type State string

const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// Update is one event on a streaming session's update channel. Chunks and
// tool-call notices are non-terminal; exactly one Done or Err is delivered
// per session unless the session is cancelled first, in which case the
// channel just closes.
type Update struct {
	Chunk    string
	ToolCall *types.ToolCallEvent
	Done     bool
	Err      error
}

// pendingCall is one unresolved tool invocation awaiting a host result.
type pendingCall struct {
	cont *toolcall.Continuation
	tool string
}

// liveSession is one registered unit of work. It is mutated only by the task
// driving it and by an explicit cancel, both under the registry mutex.
type liveSession struct {
	id        string
	kind      Kind
	startedAt time.Time
	cancel    context.CancelFunc
	// updates carries chunks and the terminal signal; nil for one-shot.
	updates chan Update
	// pending maps call ids to unresolved tool calls, for out-of-band
	// resolution. Guarded by the registry mutex.
	pending map[string]pendingCall
	// done closes when the driving task has fully exited.
	done chan struct{}
}
