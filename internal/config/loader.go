package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath    string `json:"model_path" yaml:"model_path" toml:"model_path"`
	ContextSize  int    `json:"context_size" yaml:"context_size" toml:"context_size"`
	Threads      int    `json:"threads" yaml:"threads" toml:"threads"`
	MaxSessions  int    `json:"max_sessions" yaml:"max_sessions" toml:"max_sessions"`
	MaxWaitMS    int    `json:"max_wait_ms" yaml:"max_wait_ms" toml:"max_wait_ms"`
	ChunkBuffer  int    `json:"chunk_buffer" yaml:"chunk_buffer" toml:"chunk_buffer"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled  bool   `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
