package types

// SchemaDefinition is the open-ended, recursively nested schema description a
// host supplies for constrained output or tool parameters. It mirrors the
// JSON Schema subset the bridge understands; anything else is rejected at
// translation time, before a session is created.
type SchemaDefinition struct {
	// Data type tag: object, array, string, number, integer or boolean.
	// Ignored when AnyOf is present.
	// example: object
	Type string `json:"type,omitempty" example:"object"`
	// Optional name for object and union schemas.
	// example: WeatherReport
	Title string `json:"title,omitempty" example:"WeatherReport"`
	// Human-readable description, forwarded to the generation schema.
	Description string `json:"description,omitempty"`
	// Object property schemas by name.
	Properties map[string]*SchemaDefinition `json:"properties,omitempty"`
	// Property names that must be present; all others are optional.
	Required []string `json:"required,omitempty"`
	// Element schema for arrays.
	Items *SchemaDefinition `json:"items,omitempty"`
	// Minimum / maximum element counts for arrays.
	MinItems *uint64 `json:"minItems,omitempty"`
	MaxItems *uint64 `json:"maxItems,omitempty"`
	// Allowed values for string and numeric schemas.
	Enum []any `json:"enum,omitempty"`
	// Regular expression constraint for strings (ignored when Enum is set).
	Pattern string `json:"pattern,omitempty"`
	// Numeric range constraints. Only one bound survives translation.
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	// Step constraint. Unsupported: translation fails when present.
	MultipleOf *float64 `json:"multipleOf,omitempty"`
	// Union of alternative schemas. Takes priority over Type.
	AnyOf []*SchemaDefinition `json:"anyOf,omitempty"`
}
