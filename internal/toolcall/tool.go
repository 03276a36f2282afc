package toolcall

import (
	"context"
	"encoding/json"

	"genbridge/internal/genschema"
	"genbridge/internal/transcript"
)

// Host is the callback through which tool execution leaves the bridge. It
// receives the host-side tool id, the model's arguments serialized to a
// string, and the continuation to complete when a result is available. Host
// must not block; it may complete the continuation from any goroutine.
type Host func(toolID string, serializedArgs string, cont *Continuation)

// Tool is a model-callable unit wrapping a host callback.
type Tool struct {
	ID          string
	Name        string
	Description string
	Parameters  genschema.Node
	host        Host
}

// New builds a Tool from its descriptor and the host callback.
func New(id, name, description string, params genschema.Node, host Host) *Tool {
	return &Tool{ID: id, Name: name, Description: description, Parameters: params, host: host}
}

// Definition renders the tool for attachment to transcript instructions.
func (t *Tool) Definition() transcript.ToolDefinition {
	return transcript.ToolDefinition{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Invoke runs one tool call with a fresh continuation, suspending until the
// host completes it or ctx is cancelled.
func (t *Tool) Invoke(ctx context.Context, args any) (string, error) {
	return t.InvokeWith(ctx, NewContinuation(), args)
}

// InvokeWith runs one tool call using a caller-supplied continuation, so the
// caller can announce the pending call id before execution starts. The
// model's arguments are serialized, the host is notified, and the calling
// task suspends until resolution, rejection, or cancellation.
func (t *Tool) InvokeWith(ctx context.Context, cont *Continuation, args any) (string, error) {
	serialized, err := SerializeArgs(args)
	if err != nil {
		return "", ErrToolInvocation(err.Error())
	}
	t.host(t.ID, serialized, cont)
	value, err := cont.Await(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrToolInvocation(err.Error())
	}
	return t.classify(value)
}

// classify turns a host return value into the tool's string result: a string
// is returned verbatim, an error rejects the call, and anything else is
// serialized to formatted JSON. Values that cannot be serialized fail with
// an unknown-tool-result error.
func (t *Tool) classify(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case error:
		return "", ErrToolInvocation(v.Error())
	case nil:
		return "", ErrUnknownToolResult(t.Name)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", ErrUnknownToolResult(t.Name)
		}
		return string(b), nil
	}
}

// SerializeArgs renders the model's proposed arguments as a string. Strings
// and raw JSON pass through unchanged.
func SerializeArgs(args any) (string, error) {
	switch v := args.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.RawMessage:
		return string(v), nil
	case []byte:
		return string(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
