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

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// Backend selects the inference realization: "local" or "remote".
	Backend string `json:"backend" yaml:"backend" toml:"backend"`
	// Model is the identifier handed to the backend on acquisition.
	Model string `json:"model" yaml:"model" toml:"model"`
	// ModelsDir is scanned for *.gguf files when the local backend is used.
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	// RemoteBaseURL overrides the chat-completions endpoint (remote backend).
	RemoteBaseURL string `json:"remote_base_url" yaml:"remote_base_url" toml:"remote_base_url"`
	// DefaultMode is the initial translation direction for voice input.
	DefaultMode string `json:"default_mode" yaml:"default_mode" toml:"default_mode"`
	// Llama runtime tunables (local backend).
	LlamaCtx     int `json:"llama_ctx" yaml:"llama_ctx" toml:"llama_ctx"`
	LlamaThreads int `json:"llama_threads" yaml:"llama_threads" toml:"llama_threads"`
	// Stall watchdog tunables, in seconds.
	StallPollSeconds  int `json:"stall_poll_seconds" yaml:"stall_poll_seconds" toml:"stall_poll_seconds"`
	StallAfterSeconds int `json:"stall_after_seconds" yaml:"stall_after_seconds" toml:"stall_after_seconds"`
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
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
