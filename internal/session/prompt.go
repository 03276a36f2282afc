package session

import (
	"strings"

	"genbridge/internal/transcript"
)

// RenderPrompt flattens a transcript plus the current prompt into a single
// plain-text prompt for runtimes without a structured conversation API.
func RenderPrompt(ts transcript.Transcript, prompt string) string {
	var b strings.Builder
	for _, e := range ts {
		switch v := e.(type) {
		case transcript.Instructions:
			for _, seg := range v.Segments {
				b.WriteString("[system] ")
				b.WriteString(seg)
				b.WriteByte('\n')
			}
			for _, td := range v.Tools {
				b.WriteString("[tool] ")
				b.WriteString(td.Name)
				if td.Description != "" {
					b.WriteString(": ")
					b.WriteString(td.Description)
				}
				b.WriteByte('\n')
			}
		case transcript.Prompt:
			for _, seg := range v.Segments {
				b.WriteString("[user] ")
				b.WriteString(seg)
				b.WriteByte('\n')
			}
		case transcript.Response:
			for _, seg := range v.Segments {
				b.WriteString("[assistant] ")
				b.WriteString(seg)
				b.WriteByte('\n')
			}
		}
	}
	b.WriteString("[user] ")
	b.WriteString(prompt)
	b.WriteString("\n[assistant] ")
	return b.String()
}
