package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"genbridge/internal/session"
	"genbridge/pkg/types"
)

const userBody = `{"messages":[{"role":"user","content":"hi"}]}`

func TestE2E_OneShotGenerate(t *testing.T) {
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, _ session.ToolCallFunc) (session.Final, error) {
		for _, c := range []string{"Hello ", "world"} {
			if err := onChunk(c); err != nil {
				return session.Final{}, err
			}
		}
		return session.Final{FinishReason: "stop"}, nil
	}}
	srv, _ := startServer(t, rt, session.RegistryConfig{})

	resp := postJSON(t, srv.URL+"/v1/generate", userBody)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status=%d body=%s", resp.StatusCode, b)
	}
	var out types.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Segments) != 1 || out.Segments[0].Text != "Hello world" {
		t.Fatalf("unexpected segments: %+v", out.Segments)
	}
}

func TestE2E_StreamingWithToolResolution(t *testing.T) {
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, onToolCall session.ToolCallFunc) (session.Final, error) {
		result, err := onToolCall(ctx, "getWeather", json.RawMessage(`{"city":"Lisbon"}`))
		if err != nil {
			return session.Final{}, err
		}
		if err := onChunk("It is " + result); err != nil {
			return session.Final{}, err
		}
		return session.Final{FinishReason: "stop"}, nil
	}}
	srv, _ := startServer(t, rt, session.RegistryConfig{})

	body := `{"messages":[{"role":"user","content":"weather?"}],"options":{"tools":[{"id":"weather-1","name":"getWeather"}]}}`
	resp := postJSON(t, srv.URL+"/v1/sessions", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	sc := bufio.NewScanner(resp.Body)

	first := readLine(t, sc)
	id, _ := first["sessionId"].(string)
	if id == "" {
		t.Fatalf("missing session id: %v", first)
	}

	toolLine := readLine(t, sc)
	tc, ok := toolLine["toolCall"].(map[string]any)
	if !ok {
		t.Fatalf("expected tool call line, got %v", toolLine)
	}
	if tc["toolId"] != "weather-1" || tc["toolName"] != "getWeather" {
		t.Fatalf("tool call: %v", tc)
	}
	callID, _ := tc["callId"].(string)

	res := postJSON(t, srv.URL+"/v1/sessions/"+id+"/tool-result", `{"callId":"`+callID+`","result":"sunny"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("tool-result status=%d", res.StatusCode)
	}

	chunk := readLine(t, sc)
	if chunk["chunk"] != "It is sunny" {
		t.Fatalf("chunk line: %v", chunk)
	}
	done := readLine(t, sc)
	if done["done"] != true {
		t.Fatalf("terminal line: %v", done)
	}
}

func TestE2E_OneShotToolResolvedViaSessions(t *testing.T) {
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, onToolCall session.ToolCallFunc) (session.Final, error) {
		result, err := onToolCall(ctx, "getWeather", json.RawMessage(`{"city":"Lisbon"}`))
		if err != nil {
			return session.Final{}, err
		}
		if err := onChunk("It is " + result); err != nil {
			return session.Final{}, err
		}
		return session.Final{FinishReason: "stop"}, nil
	}}
	srv, _ := startServer(t, rt, session.RegistryConfig{})

	// The one-shot response blocks on the parked tool call, so it is driven
	// from a goroutine while the client resolves the call through the
	// sessions surface.
	type reply struct {
		status int
		out    types.GenerateResponse
		err    error
	}
	replies := make(chan reply, 1)
	go func() {
		body := `{"messages":[{"role":"user","content":"weather?"}],"options":{"tools":[{"id":"weather-1","name":"getWeather"}]}}`
		resp, err := http.Post(srv.URL+"/v1/generate", "application/json", strings.NewReader(body))
		if err != nil {
			replies <- reply{err: err}
			return
		}
		defer resp.Body.Close()
		var out types.GenerateResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		replies <- reply{status: resp.StatusCode, out: out, err: err}
	}()

	var st types.SessionStatus
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(srv.URL + "/v1/sessions")
		if err != nil {
			t.Fatalf("sessions: %v", err)
		}
		var status types.StatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode sessions: %v", err)
		}
		resp.Body.Close()
		if len(status.Sessions) == 1 && len(status.Sessions[0].PendingCalls) == 1 {
			st = status.Sessions[0]
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("pending call never listed: %+v", status.Sessions)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if st.Kind != "one_shot" || st.PendingCalls[0].ToolName != "getWeather" {
		t.Fatalf("session status: %+v", st)
	}

	res := postJSON(t, srv.URL+"/v1/sessions/"+st.SessionID+"/tool-result",
		`{"callId":"`+st.PendingCalls[0].CallID+`","result":"sunny"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("tool-result status=%d", res.StatusCode)
	}

	r := <-replies
	if r.err != nil {
		t.Fatalf("generate: %v", r.err)
	}
	if r.status != http.StatusOK {
		t.Fatalf("generate status=%d", r.status)
	}
	if len(r.out.Segments) != 3 || r.out.Segments[1].Output != "sunny" || r.out.Segments[2].Text != "It is sunny" {
		t.Fatalf("segments: %+v", r.out.Segments)
	}
}

func TestE2E_DuplicateToolResultConflicts(t *testing.T) {
	release := make(chan struct{})
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, onToolCall session.ToolCallFunc) (session.Final, error) {
		defer close(release)
		_, err := onToolCall(ctx, "getWeather", nil)
		if err != nil {
			return session.Final{}, err
		}
		return session.Final{FinishReason: "stop"}, nil
	}}
	srv, _ := startServer(t, rt, session.RegistryConfig{})

	body := `{"messages":[{"role":"user","content":"weather?"}],"options":{"tools":[{"id":"weather-1","name":"getWeather"}]}}`
	resp := postJSON(t, srv.URL+"/v1/sessions", body)
	defer resp.Body.Close()
	sc := bufio.NewScanner(resp.Body)
	id, _ := readLine(t, sc)["sessionId"].(string)
	tc, ok := readLine(t, sc)["toolCall"].(map[string]any)
	if !ok {
		t.Fatalf("expected tool call line")
	}
	callID, _ := tc["callId"].(string)

	res := postJSON(t, srv.URL+"/v1/sessions/"+id+"/tool-result", `{"callId":"`+callID+`","result":"sunny"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("first resolve status=%d", res.StatusCode)
	}
	// The continuation stays registered until the runtime consumes it, so a
	// duplicate racing in before that sees 409, after that 404. Either way it
	// never double-delivers.
	dup := postJSON(t, srv.URL+"/v1/sessions/"+id+"/tool-result", `{"callId":"`+callID+`","result":"rainy"}`)
	dup.Body.Close()
	if dup.StatusCode != http.StatusConflict && dup.StatusCode != http.StatusNotFound {
		t.Fatalf("duplicate resolve status=%d", dup.StatusCode)
	}
	<-release
	for sc.Scan() {
	}
}

func TestE2E_CancelStopsStream(t *testing.T) {
	started := make(chan struct{})
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, _ session.ToolCallFunc) (session.Final, error) {
		_ = onChunk("partial")
		close(started)
		<-ctx.Done()
		return session.Final{}, ctx.Err()
	}}
	srv, reg := startServer(t, rt, session.RegistryConfig{})

	resp := postJSON(t, srv.URL+"/v1/sessions", userBody)
	defer resp.Body.Close()
	sc := bufio.NewScanner(resp.Body)
	id, _ := readLine(t, sc)["sessionId"].(string)
	<-started

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/sessions/"+id, nil)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel status=%d", del.StatusCode)
	}

	// The stream must end without a terminal done/error line.
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		if m["done"] == true || m["error"] != nil {
			t.Fatalf("terminal line after cancel: %v", m)
		}
	}
	if reg.Count() != 0 {
		t.Fatalf("registry not empty after cancel: %d", reg.Count())
	}
}

func TestE2E_Backpressure429(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	started := make(chan struct{})
	rt := &fakeRuntime{ready: true, generate: func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, _ session.ToolCallFunc) (session.Final, error) {
		close(started)
		select {
		case <-block:
		case <-ctx.Done():
		}
		return session.Final{}, ctx.Err()
	}}
	srv, _ := startServer(t, rt, session.RegistryConfig{MaxSessions: 1, MaxWait: 20 * time.Millisecond})

	resp := postJSON(t, srv.URL+"/v1/sessions", userBody)
	defer resp.Body.Close()
	<-started

	second := postJSON(t, srv.URL+"/v1/generate", userBody)
	defer second.Body.Close()
	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status=%d", second.StatusCode)
	}
	var out types.ErrorResponse
	if err := json.NewDecoder(second.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Code != http.StatusTooManyRequests {
		t.Fatalf("error body: %+v", out)
	}
}

func TestE2E_NotReady(t *testing.T) {
	srv, _ := startServer(t, &fakeRuntime{ready: false}, session.RegistryConfig{})

	ready, err := http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	ready.Body.Close()
	if ready.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", ready.StatusCode)
	}

	resp := postJSON(t, srv.URL+"/v1/generate", userBody)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("generate status=%d", resp.StatusCode)
	}
}
