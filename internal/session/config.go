package session

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding RegistryConfig fields are unset.
const (
	defaultMaxSessions = 8
	defaultMaxWait     = 5 * time.Second
	defaultChunkBuffer = 16
)

// RegistryConfig encapsulates all tunables for Registry construction.
type RegistryConfig struct {
	// Runtime serves generation requests. Required.
	Runtime Runtime
	// MaxSessions bounds concurrently admitted sessions (0 = default).
	MaxSessions int
	// MaxWait bounds how long admission blocks before failing with a
	// session-limit error (0 = default).
	MaxWait time.Duration
	// ChunkBuffer sizes each streaming session's update channel (0 = default).
	ChunkBuffer int
	// Logger for session lifecycle logging; disabled when unset.
	Logger *zerolog.Logger
	// Events receives lifecycle events; dropped when unset.
	Events EventPublisher
}

// NewWithConfig constructs a Registry from RegistryConfig.
func NewWithConfig(cfg RegistryConfig) *Registry {
	r := &Registry{
		runtime:  cfg.Runtime,
		sessions: make(map[string]*liveSession),
		log:      zerolog.Nop(),
		pub:      noopPublisher{},
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = defaultMaxWait
	}
	if cfg.ChunkBuffer <= 0 {
		cfg.ChunkBuffer = defaultChunkBuffer
	}
	r.maxSessions = cfg.MaxSessions
	r.maxWait = cfg.MaxWait
	r.chunkBuffer = cfg.ChunkBuffer
	r.slots = make(chan struct{}, cfg.MaxSessions)
	if cfg.Logger != nil {
		r.log = *cfg.Logger
	}
	if cfg.Events != nil {
		r.pub = cfg.Events
	}
	return r
}

// New constructs a Registry around a runtime with package defaults.
func New(rt Runtime) *Registry {
	return NewWithConfig(RegistryConfig{Runtime: rt})
}
