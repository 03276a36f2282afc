package types

import "encoding/json"

// ChatMessage is one entry of the conversation history sent by the host.
type ChatMessage struct {
	// Message role: system, user or assistant.
	// example: user
	Role string `json:"role" example:"user"`
	// Message text.
	// example: What's the weather in Lisbon?
	Content string `json:"content" example:"What's the weather in Lisbon?"`
}

// ToolSpec describes a host-defined tool the model may invoke mid-generation.
type ToolSpec struct {
	// Host-side identifier passed back on invocation.
	// example: weather-1
	ID string `json:"id" example:"weather-1"`
	// Tool name exposed to the model.
	// example: getWeather
	Name string `json:"name" example:"getWeather"`
	// What the tool does; forwarded to the model.
	Description string `json:"description,omitempty"`
	// Schema of the tool's arguments.
	ParametersSchema *SchemaDefinition `json:"parametersSchema,omitempty"`
}

// RequestOptions carries sampling, length and structure parameters. TopP and
// TopK are mutually exclusive; supplying both fails the request before any
// model work begins.
type RequestOptions struct {
	// Sampling temperature (higher = more random).
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	// Maximum number of new tokens to generate.
	// example: 256
	MaxTokens *uint `json:"maxTokens,omitempty" example:"256"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP *float64 `json:"topP,omitempty" example:"0.9"`
	// Top-K sampling: limit candidates to the top K tokens.
	// example: 40
	TopK *uint `json:"topK,omitempty" example:"40"`
	// Tools the model may call during this request.
	Tools []ToolSpec `json:"tools,omitempty"`
	// Optional constrained-output schema for the final answer.
	Schema *SchemaDefinition `json:"schema,omitempty"`
}

// GenerateRequest is the inbound payload for one-shot and streaming requests.
type GenerateRequest struct {
	// Conversation history. Must be non-empty and end with a user message.
	Messages []ChatMessage `json:"messages"`
	// Generation options.
	Options RequestOptions `json:"options"`
}

// Segment is one piece of a one-shot response.
type Segment struct {
	// Segment kind: text, tool-call or tool-result.
	// example: text
	Type string `json:"type" example:"text"`
	// Generated text (type == text).
	Text string `json:"text,omitempty"`
	// Invoked tool name (type == tool-call or tool-result).
	ToolName string `json:"toolName,omitempty"`
	// Serialized tool arguments (type == tool-call).
	Input string `json:"input,omitempty"`
	// Tool output (type == tool-result).
	Output string `json:"output,omitempty"`
}

// Segment type tags.
const (
	SegmentText       = "text"
	SegmentToolCall   = "tool-call"
	SegmentToolResult = "tool-result"
)

// GenerateResponse is the one-shot result payload.
type GenerateResponse struct {
	Segments []Segment `json:"segments"`
}

// SessionStarted is the first NDJSON line of a streaming response.
type SessionStarted struct {
	// Opaque session identifier, usable with the cancel endpoint.
	// example: 7b0d5a3e-0d3f-4d2a-9f6b-1c2d3e4f5a6b
	SessionID string `json:"sessionId"`
}

// ToolCallEvent notifies the host that the model suspended on a tool call.
type ToolCallEvent struct {
	// Identifier to pass back when resolving the call.
	CallID string `json:"callId"`
	// Host-side tool identifier.
	ToolID string `json:"toolId"`
	// Tool name as exposed to the model.
	ToolName string `json:"toolName"`
	// Serialized arguments proposed by the model.
	Input string `json:"input"`
}

// StreamEvent is one NDJSON line of a streaming response after the session id.
// Exactly one terminal line (Done or Error) is emitted per session unless the
// session is cancelled first, in which case the stream just ends.
type StreamEvent struct {
	// Incremental text chunk.
	Chunk string `json:"chunk,omitempty"`
	// Pending tool invocation, if the model suspended on one.
	ToolCall *ToolCallEvent `json:"toolCall,omitempty"`
	// True on successful completion.
	Done bool `json:"done,omitempty"`
	// Terminal error message.
	Error string `json:"error,omitempty"`
}

// ToolResultRequest resolves a pending tool call continuation.
type ToolResultRequest struct {
	// Call identifier from the ToolCallEvent.
	CallID string `json:"callId"`
	// Tool result: a JSON string is returned to the model verbatim, any other
	// JSON value is serialized to formatted text.
	Result json.RawMessage `json:"result,omitempty"`
	// Error message; rejects the call instead of resolving it.
	Error string `json:"error,omitempty"`
}

// SessionStatus summarizes one in-flight session for GET /v1/sessions.
type SessionStatus struct {
	// Session identifier.
	SessionID string `json:"session_id"`
	// Session kind: one_shot or streaming.
	// example: streaming
	Kind string `json:"kind" example:"streaming"`
	// Lifecycle state. In-flight sessions are always running; terminal
	// sessions leave the registry immediately.
	// example: running
	State string `json:"state" example:"running"`
	// Session start time (unix seconds).
	// example: 1700000000
	StartedAt int64 `json:"started_at_unix" example:"1700000000"`
	// Number of tool calls currently awaiting a host result.
	// example: 0
	PendingToolCalls int `json:"pending_tool_calls" example:"0"`
	// Unresolved tool calls on this session, in call-id order. Each entry's
	// call id is accepted by POST /v1/sessions/{id}/tool-result.
	PendingCalls []PendingToolCall `json:"pending_calls,omitempty"`
}

// PendingToolCall identifies one unresolved tool call on a session.
type PendingToolCall struct {
	// Call identifier to pass back via the tool-result endpoint.
	// example: 9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d
	CallID string `json:"call_id" example:"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"`
	// Name of the tool the model invoked.
	// example: getWeather
	ToolName string `json:"tool_name" example:"getWeather"`
}

// StatusResponse is returned by GET /v1/sessions.
type StatusResponse struct {
	// In-flight sessions.
	Sessions []SessionStatus `json:"sessions"`
	// Maximum concurrently admitted sessions.
	// example: 8
	MaxSessions int `json:"max_sessions" example:"8"`
	// True when the model runtime is ready to serve.
	// example: true
	Ready bool `json:"ready" example:"true"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
