package webflash

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file-backed configuration for the CLI and the capture
// pipeline. Service endpoints live in the YAML file; secrets come from
// the environment only.
type Config struct {
	// DataDir is the directory holding the collection.
	DataDir string `yaml:"data_dir"`

	// Adapter selects the storage adapter ("fs" or "bolt").
	Adapter string `yaml:"adapter"`

	Completion CompletionConfig `yaml:"completion"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
}

// CompletionConfig points at the chat-completion service.
type CompletionConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"` // env only, never the file
}

// EmbeddingConfig points at the text/image vectorization service.
type EmbeddingConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"-"` // env only, never the file
}

// Environment variables overriding / completing the file config.
const (
	EnvDataDir          = "WEBFLASH_DATA_DIR"
	EnvAdapter          = "WEBFLASH_ADAPTER"
	EnvCompletionURL    = "WEBFLASH_COMPLETION_ENDPOINT"
	EnvCompletionModel  = "WEBFLASH_COMPLETION_MODEL"
	EnvCompletionAPIKey = "WEBFLASH_COMPLETION_API_KEY"
	EnvEmbeddingURL     = "WEBFLASH_EMBEDDING_ENDPOINT"
	EnvEmbeddingAPIKey  = "WEBFLASH_EMBEDDING_API_KEY"
)

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Adapter: AdapterFS,
		Completion: CompletionConfig{
			Model: "gpt-4o",
		},
	}
}

// LoadConfig reads the YAML config at path (if it exists) and applies
// environment overrides on top. A missing file is not an error; the
// defaults plus environment are enough to run.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvAdapter); v != "" {
		cfg.Adapter = v
	}
	if v := os.Getenv(EnvCompletionURL); v != "" {
		cfg.Completion.Endpoint = v
	}
	if v := os.Getenv(EnvCompletionModel); v != "" {
		cfg.Completion.Model = v
	}
	cfg.Completion.APIKey = os.Getenv(EnvCompletionAPIKey)
	if v := os.Getenv(EnvEmbeddingURL); v != "" {
		cfg.Embedding.Endpoint = v
	}
	cfg.Embedding.APIKey = os.Getenv(EnvEmbeddingAPIKey)
}
