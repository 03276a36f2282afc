package session

// modelUnavailableError signals that the model runtime is not ready. Every
// entry point fails with it before doing any translation work, so the HTTP
// layer can return 503 Service Unavailable instead of 500.
type modelUnavailableError struct{ msg string }

func (e modelUnavailableError) Error() string { return "model unavailable: " + e.msg }

// ErrModelUnavailable constructs a modelUnavailableError.
func ErrModelUnavailable(msg string) error { return modelUnavailableError{msg: msg} }

// IsModelUnavailable reports whether err indicates an unready model runtime.
func IsModelUnavailable(err error) bool {
	_, ok := err.(modelUnavailableError)
	return ok
}

// sessionLimitError signals admission timeout/overflow for 429 mapping.
type sessionLimitError struct{}

func (sessionLimitError) Error() string { return "too many concurrent sessions" }

// ErrSessionLimit constructs a sessionLimitError.
func ErrSessionLimit() error { return sessionLimitError{} }

// IsSessionLimit reports whether err indicates backpressure (return 429).
func IsSessionLimit(err error) bool {
	_, ok := err.(sessionLimitError)
	return ok
}

// generationError wraps an opaque failure surfaced by the underlying runtime.
type generationError struct{ cause error }

func (e generationError) Error() string { return "generation failed: " + e.cause.Error() }

func (e generationError) Unwrap() error { return e.cause }

// ErrGeneration constructs a generationError.
func ErrGeneration(cause error) error { return generationError{cause: cause} }

// IsGeneration reports whether err indicates a runtime generation failure.
func IsGeneration(err error) bool {
	_, ok := err.(generationError)
	return ok
}

// pendingCallNotFoundError signals a tool-result for an unknown session or
// call id.
type pendingCallNotFoundError struct{ sessionID, callID string }

func (e pendingCallNotFoundError) Error() string {
	return "no pending tool call " + e.callID + " in session " + e.sessionID
}

// ErrPendingCallNotFound constructs a pendingCallNotFoundError.
func ErrPendingCallNotFound(sessionID, callID string) error {
	return pendingCallNotFoundError{sessionID: sessionID, callID: callID}
}

// IsPendingCallNotFound reports whether err indicates an unknown pending call.
func IsPendingCallNotFound(err error) bool {
	_, ok := err.(pendingCallNotFoundError)
	return ok
}
