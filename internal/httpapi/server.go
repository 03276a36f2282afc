package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"genbridge/internal/session"
	"genbridge/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Generate(ctx context.Context, req session.Request) (types.GenerateResponse, error)
	Stream(req session.Request) (string, <-chan session.Update, error)
	ResolveToolCall(sessionID, callID string, value any, rejectMsg string) error
	Cancel(id string) bool
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", handleGenerate(svc))
		r.Post("/sessions", handleStream(svc))
		r.Post("/sessions/{id}/tool-result", handleToolResult(svc))
		r.Delete("/sessions/{id}", handleCancel(svc))
		r.Get("/sessions", handleSessions(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeGenerateRequest enforces content type and the configured body limit
// before decoding the shared request payload.
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (types.GenerateRequest, bool) {
	var req types.GenerateRequest
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return req, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if len(req.Messages) == 0 {
		writeJSONError(w, http.StatusBadRequest, "messages are required")
		return req, false
	}
	return req, true
}

// handleGenerate serves one-shot generation.
//
// @Summary      One-shot generation
// @Description  Runs a full generation session and returns the segmented result.
// @Accept       json
// @Produce      json
// @Param        request body types.GenerateRequest true "generation request"
// @Success      200 {object} types.GenerateResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      429 {object} types.ErrorResponse
// @Failure      503 {object} types.ErrorResponse
// @Router       /v1/generate [post]
func handleGenerate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeGenerateRequest(w, r)
		if !ok {
			return
		}
		lvl := requestLogLevel(r)
		start := time.Now()
		logStart(r, lvl, "generate")
		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := mergeCancel(baseCtx, r.Context())
		defer cancel()
		sessionsStarted.WithLabelValues("one_shot").Inc()
		resp, err := svc.Generate(ctx, session.Request{Messages: req.Messages, Options: req.Options})
		if err != nil {
			if r.Context().Err() != nil || baseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure("session_limit")
			}
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, "generate", status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		logEnd(r, lvl, "generate", http.StatusOK, start, nil)
	}
}

// handleStream serves streaming generation as NDJSON. The first line carries
// the session id; subsequent lines are stream events. A client disconnect
// cancels the session.
//
// @Summary      Streaming generation
// @Description  Starts a streaming session and emits NDJSON lines until a terminal event.
// @Accept       json
// @Produce      application/x-ndjson
// @Param        request body types.GenerateRequest true "generation request"
// @Success      200 {object} types.StreamEvent
// @Failure      400 {object} types.ErrorResponse
// @Failure      429 {object} types.ErrorResponse
// @Failure      503 {object} types.ErrorResponse
// @Router       /v1/sessions [post]
func handleStream(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeGenerateRequest(w, r)
		if !ok {
			return
		}
		lvl := requestLogLevel(r)
		start := time.Now()
		logStart(r, lvl, "stream")
		id, updates, err := svc.Stream(session.Request{Messages: req.Messages, Options: req.Options})
		if err != nil {
			status := statusForError(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure("session_limit")
			}
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, "stream", status, start, err)
			return
		}
		sessionsStarted.WithLabelValues("streaming").Inc()

		w.Header().Set("Content-Type", "application/x-ndjson")
		var flush func()
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		enc := json.NewEncoder(lineWriter(w, lvl))
		_ = enc.Encode(types.SessionStarted{SessionID: id})
		if flush != nil {
			flush()
		}
		for {
			select {
			case <-r.Context().Done():
				// Client went away: stop the session and let the task drain.
				svc.Cancel(id)
				for range updates {
				}
				logEnd(r, lvl, "stream", http.StatusOK, start, r.Context().Err())
				return
			case <-baseCtx.Done():
				svc.Cancel(id)
				for range updates {
				}
				return
			case u, open := <-updates:
				if !open {
					logEnd(r, lvl, "stream", http.StatusOK, start, nil)
					return
				}
				if err := enc.Encode(streamEvent(u)); err != nil {
					svc.Cancel(id)
					for range updates {
					}
					return
				}
				if u.Chunk != "" {
					chunksStreamed.Inc()
				}
				if flush != nil {
					flush()
				}
			}
		}
	}
}

// streamEvent converts a session update into its wire form.
func streamEvent(u session.Update) types.StreamEvent {
	ev := types.StreamEvent{Chunk: u.Chunk, ToolCall: u.ToolCall, Done: u.Done}
	if u.Err != nil {
		ev.Error = u.Err.Error()
	}
	return ev
}

// handleToolResult resolves a pending tool call continuation.
//
// @Summary      Resolve a pending tool call
// @Accept       json
// @Param        id      path string                  true "session id"
// @Param        request body types.ToolResultRequest true "tool result"
// @Success      204
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      409 {object} types.ErrorResponse
// @Router       /v1/sessions/{id}/tool-result [post]
func handleToolResult(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "id")
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ToolResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.CallID == "" {
			writeJSONError(w, http.StatusBadRequest, "callId is required")
			return
		}
		if len(req.Result) == 0 && req.Error == "" {
			writeJSONError(w, http.StatusBadRequest, "result or error is required")
			return
		}
		var value any
		if len(req.Result) > 0 {
			if err := json.Unmarshal(req.Result, &value); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid result payload")
				return
			}
		}
		if err := svc.ResolveToolCall(sessionID, req.CallID, value, req.Error); err != nil {
			writeJSONError(w, statusForError(err), err.Error())
			return
		}
		toolResultsResolved.Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleCancel cancels a live session.
//
// @Summary      Cancel a session
// @Param        id path string true "session id"
// @Success      204
// @Failure      404 {object} types.ErrorResponse
// @Router       /v1/sessions/{id} [delete]
func handleCancel(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !svc.Cancel(id) {
			writeJSONError(w, http.StatusNotFound, "unknown session: "+id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleSessions reports the live session table.
//
// @Summary      List live sessions
// @Produce      json
// @Success      200 {object} types.StatusResponse
// @Router       /v1/sessions [get]
func handleSessions(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	}
}
