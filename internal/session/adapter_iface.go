package session

import (
	"context"
	"encoding/json"

	"genbridge/internal/genopts"
	"genbridge/internal/genschema"
	"genbridge/internal/transcript"
)

// Runtime abstracts the on-device model runtime the registry drives.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type Runtime interface {
	// Ready reports whether the runtime can serve generation requests.
	// Entry points fail fast with a model-unavailable error when false.
	Ready() bool
	// Open prepares a runtime session for a single generation request.
	Open() (RuntimeSession, error)
}

// ToolCallFunc is invoked by the runtime when the model requests a tool.
// Generation suspends until it returns the tool's string result or an error.
type ToolCallFunc func(ctx context.Context, toolName string, args json.RawMessage) (string, error)

// RuntimeSession drives the model for one request. Callbacks are invoked
// sequentially from the generating task; implementations must return when the
// context is canceled.
type RuntimeSession interface {
	Generate(ctx context.Context, req RuntimeRequest, onChunk func(string) error, onToolCall ToolCallFunc) (Final, error)
	// Close releases any resources associated with the session.
	Close() error
}

// RuntimeRequest carries the normalized inputs of one generation request.
type RuntimeRequest struct {
	Transcript transcript.Transcript
	Prompt     string
	Options    genopts.Options
	// Output constrains the final answer's shape; nil means free-form text.
	Output genschema.Node
	// Tools the model may call, as advertised in the instructions.
	Tools []transcript.ToolDefinition
}

// Final summarizes the generation after streaming.
type Final struct {
	Content      string
	FinishReason string
}
