package genopts

import (
	"testing"

	"genbridge/pkg/types"
)

func f64(v float64) *float64 { return &v }
func u(v uint) *uint         { return &v }

func TestBuild_DefaultsToGreedy(t *testing.T) {
	opts, err := Build(types.RequestOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := opts.Sampling.(Greedy); !ok {
		t.Fatalf("expected greedy sampling, got %T", opts.Sampling)
	}
	if opts.Temperature != nil || opts.MaxOutputTokens != nil {
		t.Fatalf("expected unset optionals, got %+v", opts)
	}
}

func TestBuild_CopiesTemperatureAndMaxTokens(t *testing.T) {
	opts, err := Build(types.RequestOptions{Temperature: f64(0.7), MaxTokens: u(128)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if opts.Temperature == nil || *opts.Temperature != 0.7 {
		t.Fatalf("temperature not copied: %+v", opts)
	}
	if opts.MaxOutputTokens == nil || *opts.MaxOutputTokens != 128 {
		t.Fatalf("max tokens not copied: %+v", opts)
	}
}

func TestBuild_TopP(t *testing.T) {
	opts, err := Build(types.RequestOptions{TopP: f64(0.9)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s, ok := opts.Sampling.(NucleusTopP)
	if !ok || s.P != 0.9 {
		t.Fatalf("expected NucleusTopP(0.9), got %#v", opts.Sampling)
	}
}

func TestBuild_TopK(t *testing.T) {
	opts, err := Build(types.RequestOptions{TopK: u(40)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s, ok := opts.Sampling.(TopK)
	if !ok || s.K != 40 {
		t.Fatalf("expected TopK(40), got %#v", opts.Sampling)
	}
}

func TestBuild_ConflictingSampling(t *testing.T) {
	_, err := Build(types.RequestOptions{TopP: f64(0.9), TopK: u(40)})
	if err == nil || !IsConflictingSampling(err) {
		t.Fatalf("expected conflicting sampling error, got %v", err)
	}
}
