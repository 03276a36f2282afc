package transcript

// emptyMessageListError signals a request without any messages.
type emptyMessageListError struct{}

func (emptyMessageListError) Error() string { return "message list is empty" }

// ErrEmptyMessageList constructs an emptyMessageListError.
func ErrEmptyMessageList() error { return emptyMessageListError{} }

// IsEmptyMessageList reports whether err indicates an empty message list.
func IsEmptyMessageList(err error) bool {
	_, ok := err.(emptyMessageListError)
	return ok
}

// lastMessageNotUserError signals a history that does not end with a user turn.
type lastMessageNotUserError struct{ role string }

func (e lastMessageNotUserError) Error() string {
	return "last message must have role user, got: " + e.role
}

// ErrLastMessageNotUser constructs a lastMessageNotUserError.
func ErrLastMessageNotUser(role string) error { return lastMessageNotUserError{role: role} }

// IsLastMessageNotUser reports whether err indicates a trailing non-user message.
func IsLastMessageNotUser(err error) bool {
	_, ok := err.(lastMessageNotUserError)
	return ok
}

// unknownRoleError names a role that is none of system/user/assistant.
type unknownRoleError struct{ role string }

func (e unknownRoleError) Error() string { return "unknown message role: " + e.role }

// ErrUnknownRole constructs an unknownRoleError.
func ErrUnknownRole(role string) error { return unknownRoleError{role: role} }

// IsUnknownRole reports whether err indicates an unrecognized message role.
func IsUnknownRole(err error) bool {
	_, ok := err.(unknownRoleError)
	return ok
}
