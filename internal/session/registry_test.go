package session

import (
	"context"
	"testing"
	"time"

	"genbridge/internal/transcript"
	"genbridge/pkg/types"
)

func TestNewWithConfigDefaults(t *testing.T) {
	r := NewWithConfig(RegistryConfig{Runtime: &fakeRuntime{}})
	if r.maxSessions != defaultMaxSessions {
		t.Fatalf("expected default maxSessions=%d got %d", defaultMaxSessions, r.maxSessions)
	}
	if r.maxWait != defaultMaxWait {
		t.Fatalf("expected default maxWait=%v got %v", defaultMaxWait, r.maxWait)
	}
	if r.chunkBuffer != defaultChunkBuffer {
		t.Fatalf("expected default chunkBuffer=%d got %d", defaultChunkBuffer, r.chunkBuffer)
	}
}

func TestStatus_ReflectsLiveSessions(t *testing.T) {
	started := make(chan struct{})
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, _ RuntimeRequest, _ func(string) error, _ ToolCallFunc) (Final, error) {
		close(started)
		<-ctx.Done()
		return Final{}, ctx.Err()
	}}
	r := NewWithConfig(RegistryConfig{Runtime: rt, MaxSessions: 4})
	id, updates, err := r.Stream(userMessage("hi"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	<-started
	st := r.Status()
	if !st.Ready || st.MaxSessions != 4 {
		t.Fatalf("unexpected status header: %+v", st)
	}
	if len(st.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %+v", st.Sessions)
	}
	s := st.Sessions[0]
	if s.SessionID != id || s.Kind != string(KindStreaming) || s.State != string(StateRunning) {
		t.Fatalf("unexpected session status: %+v", s)
	}
	r.Cancel(id)
	drain(updates)
	if got := r.Status(); len(got.Sessions) != 0 {
		t.Fatalf("terminated session still reported: %+v", got.Sessions)
	}
}

func TestShutdown_CancelsAndWaits(t *testing.T) {
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, _ RuntimeRequest, _ func(string) error, _ ToolCallFunc) (Final, error) {
		<-ctx.Done()
		return Final{}, ctx.Err()
	}}
	r := New(rt)
	var channels []<-chan Update
	for i := 0; i < 3; i++ {
		_, updates, err := r.Stream(userMessage("hi"))
		if err != nil {
			t.Fatalf("stream %d: %v", i, err)
		}
		channels = append(channels, updates)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("sessions left after shutdown: %d", r.Count())
	}
	for i, ch := range channels {
		for u := range ch {
			if u.Done || u.Err != nil {
				t.Fatalf("session %d emitted terminal update after shutdown: %+v", i, u)
			}
		}
	}
}

func TestEvents_LifecyclePublished(t *testing.T) {
	pub := NewMemoryPublisher()
	rt := &fakeRuntime{ready: true, generate: chunks("x")}
	r := NewWithConfig(RegistryConfig{Runtime: rt, Events: pub})
	_, updates, err := r.Stream(userMessage("hi"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	drain(updates)
	evs := pub.Events()
	if len(evs) != 2 {
		t.Fatalf("expected started+completed, got %+v", evs)
	}
	if evs[0].Name != EventStarted || evs[1].Name != EventCompleted {
		t.Fatalf("unexpected event order: %+v", evs)
	}
	if evs[0].SessionID == "" || evs[0].SessionID != evs[1].SessionID {
		t.Fatalf("event session ids inconsistent: %+v", evs)
	}
	if evs[1].Fields["state"] != string(StateCompleted) {
		t.Fatalf("completed event fields: %+v", evs[1].Fields)
	}
}

func TestEvents_CancelPublished(t *testing.T) {
	pub := NewMemoryPublisher()
	started := make(chan struct{})
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, _ RuntimeRequest, _ func(string) error, _ ToolCallFunc) (Final, error) {
		close(started)
		<-ctx.Done()
		return Final{}, ctx.Err()
	}}
	r := NewWithConfig(RegistryConfig{Runtime: rt, Events: pub})
	id, updates, err := r.Stream(userMessage("hi"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	<-started
	r.Cancel(id)
	drain(updates)
	evs := pub.Events()
	if len(evs) != 2 || evs[1].Name != EventCancelled {
		t.Fatalf("expected started+cancelled, got %+v", evs)
	}
	if evs[1].Fields["state"] != string(StateCancelled) {
		t.Fatalf("cancelled event fields: %+v", evs[1].Fields)
	}
}

func TestRenderPrompt(t *testing.T) {
	msgs := []types.ChatMessage{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
		{Role: "user", Content: "weather?"},
	}
	defs := []transcript.ToolDefinition{{Name: "getWeather", Description: "current weather"}}
	ts, prompt, err := transcript.Build(msgs, defs)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := RenderPrompt(ts, prompt)
	want := "[system] be terse\n[tool] getWeather: current weather\n[user] hello\n[assistant] hi\n[user] weather?\n[assistant] "
	if out != want {
		t.Fatalf("rendered prompt:\n%q\nwant:\n%q", out, want)
	}
}
