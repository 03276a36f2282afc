package session

import (
	"genbridge/internal/genopts"
	"genbridge/internal/genschema"
	"genbridge/internal/transcript"
	"genbridge/pkg/types"
)

// preparedTool pairs a tool descriptor with its translated parameter schema.
type preparedTool struct {
	spec   types.ToolSpec
	params genschema.Node
}

// work holds the fully translated inputs of one request. Producing it is
// synchronous; any error here prevents a session from being created.
type work struct {
	transcript transcript.Transcript
	prompt     string
	opts       genopts.Options
	output     genschema.Node
	tools      []preparedTool
	defs       []transcript.ToolDefinition
}

// prepare normalizes a request: options, output schema, tool parameter
// schemas, then the transcript. All failures here are construction errors.
func (r *Registry) prepare(req Request) (*work, error) {
	opts, err := genopts.Build(req.Options)
	if err != nil {
		return nil, err
	}
	var output genschema.Node
	if req.Options.Schema != nil {
		output, err = genschema.Translate(req.Options.Schema)
		if err != nil {
			return nil, err
		}
	}
	tools := make([]preparedTool, 0, len(req.Options.Tools))
	defs := make([]transcript.ToolDefinition, 0, len(req.Options.Tools))
	for _, spec := range req.Options.Tools {
		var params genschema.Node
		if spec.ParametersSchema != nil {
			params, err = genschema.Translate(spec.ParametersSchema)
			if err != nil {
				return nil, err
			}
		} else {
			// A tool without declared parameters takes an empty object.
			params = genschema.Object{Name: spec.Name}
		}
		tools = append(tools, preparedTool{spec: spec, params: params})
		defs = append(defs, transcript.ToolDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  params,
		})
	}
	ts, prompt, err := transcript.Build(req.Messages, defs)
	if err != nil {
		return nil, err
	}
	return &work{
		transcript: ts,
		prompt:     prompt,
		opts:       opts,
		output:     output,
		tools:      tools,
		defs:       defs,
	}, nil
}

func (w *work) runtimeRequest() RuntimeRequest {
	return RuntimeRequest{
		Transcript: w.transcript,
		Prompt:     w.prompt,
		Options:    w.opts,
		Output:     w.output,
		Tools:      w.defs,
	}
}
