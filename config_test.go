package webflash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Adapter != AdapterFS {
		t.Errorf("default adapter = %q, want %q", cfg.Adapter, AdapterFS)
	}
	if cfg.Completion.Model != "gpt-4o" {
		t.Errorf("default model = %q", cfg.Completion.Model)
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webflash.yaml")
	content := `data_dir: /var/lib/webflash
adapter: bolt
completion:
  endpoint: https://example.test/chat
  model: gpt-4o-mini
embedding:
  endpoint: https://example.test/vision
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAdapter, "fs")
	t.Setenv(EnvCompletionAPIKey, "sk-test")
	t.Setenv(EnvEmbeddingAPIKey, "sub-test")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/webflash" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.Adapter != "fs" {
		t.Errorf("env should override file adapter, got %q", cfg.Adapter)
	}
	if cfg.Completion.Endpoint != "https://example.test/chat" {
		t.Errorf("completion endpoint = %q", cfg.Completion.Endpoint)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.Completion.Model)
	}
	if cfg.Completion.APIKey != "sk-test" || cfg.Embedding.APIKey != "sub-test" {
		t.Error("api keys should come from the environment")
	}
}

func TestLoadConfig_SecretsNeverFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webflash.yaml")
	if err := os.WriteFile(path, []byte("completion:\n  apikey: leaked\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Completion.APIKey != "" {
		t.Errorf("api key leaked from file: %q", cfg.Completion.APIKey)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webflash.yaml")
	if err := os.WriteFile(path, []byte("adapter: [not: valid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNew_UnknownAdapter(t *testing.T) {
	if _, err := New(t.TempDir(), WithAdapter("postgres")); err == nil {
		t.Fatal("expected error for unknown adapter")
	}
}
