// Package transcript converts a flat ordered message list into the structured
// conversation transcript the model runtime consumes, separating out the
// trailing user message as the current prompt.
package transcript

import (
	"genbridge/internal/genschema"
	"genbridge/pkg/types"
)

// Message roles accepted from the host.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolDefinition describes one registered tool to the model. Definitions are
// attached to every Instructions entry derived from a system message.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  genschema.Node
}

// Entry is one element of a transcript. The concrete types below are the
// only implementations.
type Entry interface {
	isEntry()
}

// Instructions carries system guidance plus the available tool definitions.
type Instructions struct {
	Segments []string
	Tools    []ToolDefinition
}

// Prompt carries a prior user message.
type Prompt struct {
	Segments []string
}

// Response carries a prior assistant message.
type Response struct {
	Segments []string
}

func (Instructions) isEntry() {}
func (Prompt) isEntry()       {}
func (Response) isEntry()     {}

// Transcript is the ordered conversation history, excluding the trailing
// user message.
type Transcript []Entry

// Build converts messages into a transcript plus the current prompt. The
// list must be non-empty and end with a user message; every other element
// must carry one of the three known roles.
func Build(messages []types.ChatMessage, tools []ToolDefinition) (Transcript, string, error) {
	if len(messages) == 0 {
		return nil, "", ErrEmptyMessageList()
	}
	last := messages[len(messages)-1]
	if last.Role != RoleUser {
		return nil, "", ErrLastMessageNotUser(last.Role)
	}
	ts := make(Transcript, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case RoleSystem:
			ts = append(ts, Instructions{Segments: []string{m.Content}, Tools: tools})
		case RoleUser:
			ts = append(ts, Prompt{Segments: []string{m.Content}})
		case RoleAssistant:
			ts = append(ts, Response{Segments: []string{m.Content}})
		default:
			return nil, "", ErrUnknownRole(m.Role)
		}
	}
	return ts, last.Content, nil
}
