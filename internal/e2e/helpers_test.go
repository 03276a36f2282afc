package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"genbridge/internal/httpapi"
	"genbridge/internal/session"
)

// generateFunc scripts what the fake runtime does for one request.
type generateFunc func(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, onToolCall session.ToolCallFunc) (session.Final, error)

type fakeRuntime struct {
	ready    bool
	generate generateFunc
}

func (f *fakeRuntime) Ready() bool { return f.ready }

func (f *fakeRuntime) Open() (session.RuntimeSession, error) {
	return &fakeSession{generate: f.generate}, nil
}

type fakeSession struct {
	generate generateFunc
}

func (s *fakeSession) Generate(ctx context.Context, req session.RuntimeRequest, onChunk func(string) error, onToolCall session.ToolCallFunc) (session.Final, error) {
	return s.generate(ctx, req, onChunk, onToolCall)
}

func (s *fakeSession) Close() error { return nil }

// startServer wires a registry over the fake runtime into a live HTTP server.
func startServer(t *testing.T, rt *fakeRuntime, cfg session.RegistryConfig) (*httptest.Server, *session.Registry) {
	t.Helper()
	cfg.Runtime = rt
	reg := session.NewWithConfig(cfg)
	srv := httptest.NewServer(httpapi.NewMux(reg))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = reg.Shutdown(ctx)
	})
	return srv, reg
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

// readLine decodes the next NDJSON line from the stream.
func readLine(t *testing.T, sc *bufio.Scanner) map[string]any {
	t.Helper()
	if !sc.Scan() {
		t.Fatalf("stream ended early: %v", sc.Err())
	}
	var m map[string]any
	if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
		t.Fatalf("line %q: %v", sc.Text(), err)
	}
	return m
}
