// Package genopts validates and normalizes sampling, temperature and length
// parameters into the options the model runtime consumes.
package genopts

import "genbridge/pkg/types"

// Sampling selects the token sampling strategy. The concrete types below are
// the only implementations.
type Sampling interface {
	isSampling()
}

// Greedy picks the most likely token at every step.
type Greedy struct{}

// NucleusTopP samples from the smallest token set whose cumulative
// probability exceeds P.
type NucleusTopP struct {
	P float64
}

// TopK samples from the K most likely tokens.
type TopK struct {
	K uint
}

func (Greedy) isSampling()      {}
func (NucleusTopP) isSampling() {}
func (TopK) isSampling()        {}

// Options are normalized generation parameters. Nil fields mean "runtime
// default"; no bounds validation is applied here.
type Options struct {
	Temperature     *float64
	MaxOutputTokens *uint
	Sampling        Sampling
}

// conflictingSamplingError signals that both topP and topK were supplied.
type conflictingSamplingError struct{}

func (conflictingSamplingError) Error() string {
	return "topP and topK are mutually exclusive"
}

// ErrConflictingSampling constructs a conflictingSamplingError.
func ErrConflictingSampling() error { return conflictingSamplingError{} }

// IsConflictingSampling reports whether err indicates both sampling methods
// were requested at once.
func IsConflictingSampling(err error) bool {
	_, ok := err.(conflictingSamplingError)
	return ok
}

// Build normalizes raw request options. Supplying both topP and topK is a
// request-construction error, surfaced before any session exists.
func Build(raw types.RequestOptions) (Options, error) {
	if raw.TopP != nil && raw.TopK != nil {
		return Options{}, ErrConflictingSampling()
	}
	opts := Options{
		Temperature:     raw.Temperature,
		MaxOutputTokens: raw.MaxTokens,
		Sampling:        Greedy{},
	}
	switch {
	case raw.TopP != nil:
		opts.Sampling = NucleusTopP{P: *raw.TopP}
	case raw.TopK != nil:
		opts.Sampling = TopK{K: *raw.TopK}
	}
	return opts, nil
}
