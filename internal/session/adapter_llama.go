//go:build llama

package session

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"genbridge/internal/common/fsutil"
	"genbridge/internal/genopts"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaRuntime drives generation through an in-process llama.cpp model. It
// has no native tool-call protocol, so it never invokes the tool callback.
type llamaRuntime struct {
	modelPath string
	ctxSize   int
	threads   int
}

// NewLlamaRuntime returns a Runtime backed by the model file at modelPath.
func NewLlamaRuntime(modelPath string, ctxSize, threads int) Runtime {
	return &llamaRuntime{modelPath: modelPath, ctxSize: ctxSize, threads: threads}
}

func (rt *llamaRuntime) Ready() bool {
	if strings.TrimSpace(rt.modelPath) == "" {
		return false
	}
	return fsutil.PathExists(rt.modelPath)
}

func (rt *llamaRuntime) Open() (RuntimeSession, error) {
	if !rt.Ready() {
		return nil, errors.New("llama model path not available: " + rt.modelPath)
	}
	m, err := llama.New(rt.modelPath, llama.SetContext(rt.ctxSize))
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: rt.threads}, nil
}

// llamaSession owns the loaded model for one request.
type llamaSession struct {
	model   *llama.LLama
	threads int
}

func (s *llamaSession) Generate(ctx context.Context, req RuntimeRequest, onChunk func(string) error, _ ToolCallFunc) (Final, error) {
	if s.model == nil {
		return Final{}, errors.New("llama model not initialized")
	}
	var b strings.Builder
	s.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if err := onChunk(tok); err != nil {
			return false
		}
		b.WriteString(tok)
		return true
	})
	text, err := s.model.Predict(RenderPrompt(req.Transcript, req.Prompt), predictOptions(req, s.threads)...)
	if err != nil {
		if ctx.Err() != nil {
			return Final{}, ctx.Err()
		}
		return Final{}, err
	}
	if text == "" {
		text = b.String()
	}
	return Final{Content: text, FinishReason: "stop"}, nil
}

func (s *llamaSession) Close() error {
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

// predictOptions maps normalized generation options to go-llama.cpp options.
func predictOptions(req RuntimeRequest, threads int) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetThreads(maxInt(1, threads)),
	}
	if req.Options.MaxOutputTokens != nil {
		po = append(po, llama.SetTokens(maxInt(1, int(*req.Options.MaxOutputTokens))))
	}
	if req.Options.Temperature != nil {
		po = append(po, llama.SetTemperature(float32(*req.Options.Temperature)))
	}
	switch s := req.Options.Sampling.(type) {
	case genopts.NucleusTopP:
		po = append(po, llama.SetTopP(float32(s.P)))
	case genopts.TopK:
		po = append(po, llama.SetTopK(int(s.K)))
	case genopts.Greedy:
		// Greedy decoding: no candidate pool beyond the argmax token.
		po = append(po, llama.SetTopK(1))
	}
	return po
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
