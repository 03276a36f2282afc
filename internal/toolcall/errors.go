package toolcall

// toolInvocationError wraps a rejection reason reported by the host.
type toolInvocationError struct{ msg string }

func (e toolInvocationError) Error() string { return "tool invocation failed: " + e.msg }

// ErrToolInvocation constructs a toolInvocationError.
func ErrToolInvocation(msg string) error { return toolInvocationError{msg: msg} }

// IsToolInvocation reports whether err indicates a host-rejected tool call.
func IsToolInvocation(err error) bool {
	_, ok := err.(toolInvocationError)
	return ok
}

// unknownToolResultError signals a host return value of an unrecognized kind
// or one that could not be serialized.
type unknownToolResultError struct{ tool string }

func (e unknownToolResultError) Error() string { return "unknown tool result from " + e.tool }

// ErrUnknownToolResult constructs an unknownToolResultError.
func ErrUnknownToolResult(tool string) error { return unknownToolResultError{tool: tool} }

// IsUnknownToolResult reports whether err indicates an unclassifiable tool result.
func IsUnknownToolResult(err error) bool {
	_, ok := err.(unknownToolResultError)
	return ok
}
