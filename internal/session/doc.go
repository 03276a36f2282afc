// Package session owns the set of in-flight generation sessions and their
// cancellation. It is structured into small files by concern:
//
//   - registry.go: core Registry type, constructor, lookup/cancel/status.
//   - config.go: RegistryConfig and package defaults.
//   - types.go: internal state types (Kind, State, liveSession, Update).
//   - errors.go: error types and helpers (IsModelUnavailable, IsSessionLimit, ...).
//   - admission.go: bounded concurrent-session admission.
//   - generate.go: one-shot generation entry point.
//   - stream.go: streaming sessions and their task lifecycle.
//   - tools.go: routing of model tool calls through the invocation bridge.
//   - events.go: lifecycle event publishing.
//   - prompt.go: plain-text transcript rendering for prompt-only runtimes.
//
// Build tags and runtimes:
//
//   - In-process llama: uses the go-llama.cpp adapter, enabled with
//     `-tags=llama` (adapter_llama.go, llama_cgo.go). Without the tag a
//     no-CGO stub compiles instead (adapter_llama_stub.go) that reports the
//     runtime as unavailable, so every entry point fails fast.
//
// The registry is the only shared mutable resource; insert, remove and
// lookup are serialized under one mutex so a cancel racing a natural
// completion resolves deterministically: whoever removes the entry first
// wins, and the loser's terminal signal is dropped.
package session
