package session

import (
	"context"
	"sync/atomic"

	"genbridge/pkg/types"
)

// generateFunc scripts one fake runtime session.
type generateFunc func(ctx context.Context, req RuntimeRequest, onChunk func(string) error, onToolCall ToolCallFunc) (Final, error)

// fakeRuntime satisfies Runtime for tests; each Open hands out a session
// driven by the scripted generate function.
type fakeRuntime struct {
	ready    bool
	openErr  error
	generate generateFunc
	opened   int32
}

func (f *fakeRuntime) Ready() bool { return f.ready }

func (f *fakeRuntime) Open() (RuntimeSession, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	atomic.AddInt32(&f.opened, 1)
	return &fakeSession{generate: f.generate}, nil
}

func (f *fakeRuntime) openCount() int { return int(atomic.LoadInt32(&f.opened)) }

type fakeSession struct {
	generate generateFunc
}

func (s *fakeSession) Generate(ctx context.Context, req RuntimeRequest, onChunk func(string) error, onToolCall ToolCallFunc) (Final, error) {
	return s.generate(ctx, req, onChunk, onToolCall)
}

func (s *fakeSession) Close() error { return nil }

// chunks scripts a session that emits each chunk then finishes.
func chunks(parts ...string) generateFunc {
	return func(ctx context.Context, _ RuntimeRequest, onChunk func(string) error, _ ToolCallFunc) (Final, error) {
		var all string
		for _, p := range parts {
			if err := onChunk(p); err != nil {
				return Final{}, err
			}
			all += p
		}
		return Final{Content: all, FinishReason: "stop"}, nil
	}
}

// userMessage builds the minimal valid request.
func userMessage(content string) Request {
	return Request{Messages: []types.ChatMessage{{Role: "user", Content: content}}}
}

// drain collects all updates until the channel closes.
func drain(ch <-chan Update) []Update {
	var out []Update
	for u := range ch {
		out = append(out, u)
	}
	return out
}
