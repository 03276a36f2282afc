//go:build !llama

package session

// This file provides a no-CGO stub for the llama runtime. It is compiled
// when the 'llama' build tag is NOT set, keeping default builds and CI
// CGO-free. The real runtime lives in adapter_llama.go (tagged 'llama').

import "errors"

// llamaBuilt indicates whether this binary was compiled with real llama support.
var llamaBuilt = false

// llamaRuntime is a stub that satisfies Runtime but reports itself not
// ready, so every registry entry point fails fast with a model-unavailable
// error instead of mocking generation.
type llamaRuntime struct {
	modelPath string
}

// NewLlamaRuntime returns the stub Runtime for builds without the 'llama' tag.
func NewLlamaRuntime(modelPath string, ctxSize, threads int) Runtime {
	return &llamaRuntime{modelPath: modelPath}
}

func (rt *llamaRuntime) Ready() bool { return false }

func (rt *llamaRuntime) Open() (RuntimeSession, error) {
	return nil, errors.New("llama support not built (missing 'llama' build tag)")
}
