package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"genbridge/internal/genopts"
	"genbridge/internal/genschema"
	"genbridge/internal/session"
	"genbridge/internal/toolcall"
	"genbridge/internal/transcript"
	"genbridge/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps well-known service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case session.IsModelUnavailable(err):
		return http.StatusServiceUnavailable
	case session.IsSessionLimit(err):
		return http.StatusTooManyRequests
	case session.IsPendingCallNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, toolcall.ErrAlreadyResolved):
		return http.StatusConflict
	case isBadRequest(err):
		return http.StatusBadRequest
	case toolcall.IsToolInvocation(err) || toolcall.IsUnknownToolResult(err):
		return http.StatusBadGateway
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// isBadRequest reports whether err stems from an invalid request payload, as
// opposed to a runtime failure.
func isBadRequest(err error) bool {
	return transcript.IsEmptyMessageList(err) ||
		transcript.IsLastMessageNotUser(err) ||
		transcript.IsUnknownRole(err) ||
		genopts.IsConflictingSampling(err) ||
		genschema.IsUnsupportedKind(err) ||
		genschema.IsMissingArrayItems(err) ||
		genschema.IsInvalidPattern(err) ||
		genschema.IsUnsupportedConstraint(err)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
