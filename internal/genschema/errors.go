package genschema

// unsupportedKindError signals a missing or unrecognized type tag.
type unsupportedKindError struct{ kind string }

func (e unsupportedKindError) Error() string {
	if e.kind == "" {
		return "unsupported schema kind: (missing type)"
	}
	return "unsupported schema kind: " + e.kind
}

// ErrUnsupportedKind constructs an unsupportedKindError.
func ErrUnsupportedKind(kind string) error { return unsupportedKindError{kind: kind} }

// IsUnsupportedKind reports whether err indicates an unrecognized type tag.
func IsUnsupportedKind(err error) bool {
	_, ok := err.(unsupportedKindError)
	return ok
}

// missingArrayItemsError signals an array schema without an items sub-schema.
type missingArrayItemsError struct{}

func (missingArrayItemsError) Error() string { return "array schema has no items sub-schema" }

// ErrMissingArrayItems constructs a missingArrayItemsError.
func ErrMissingArrayItems() error { return missingArrayItemsError{} }

// IsMissingArrayItems reports whether err indicates an array without items.
func IsMissingArrayItems(err error) bool {
	_, ok := err.(missingArrayItemsError)
	return ok
}

// invalidPatternError signals a string pattern that failed to compile.
type invalidPatternError struct {
	pattern string
	cause   error
}

func (e invalidPatternError) Error() string {
	return "invalid pattern " + e.pattern + ": " + e.cause.Error()
}

func (e invalidPatternError) Unwrap() error { return e.cause }

// IsInvalidPattern reports whether err indicates a non-compiling pattern.
func IsInvalidPattern(err error) bool {
	_, ok := err.(invalidPatternError)
	return ok
}

// unsupportedConstraintError signals a constraint with no representation in
// the generation schema (currently only multipleOf).
type unsupportedConstraintError struct{ constraint string }

func (e unsupportedConstraintError) Error() string {
	return "unsupported constraint: " + e.constraint
}

// ErrUnsupportedConstraint constructs an unsupportedConstraintError.
func ErrUnsupportedConstraint(constraint string) error {
	return unsupportedConstraintError{constraint: constraint}
}

// IsUnsupportedConstraint reports whether err indicates an untranslatable constraint.
func IsUnsupportedConstraint(err error) bool {
	_, ok := err.(unsupportedConstraintError)
	return ok
}
