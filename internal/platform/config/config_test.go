package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsFillDerivedURLs(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("INFERENCE_BASE_URL", "http://ml.local:9000/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inference.BaseURL != "http://ml.local:9000" {
		t.Fatalf("expected trimmed base url, got %q", cfg.Inference.BaseURL)
	}
	if cfg.Inference.HealthBaseURL != cfg.Inference.BaseURL ||
		cfg.Inference.AlertBaseURL != cfg.Inference.BaseURL ||
		cfg.Inference.ReportBaseURL != cfg.Inference.BaseURL {
		t.Fatalf("expected derived urls to default to base, got %#v", cfg.Inference)
	}
	if cfg.Results.Policy != "latest-request" {
		t.Fatalf("expected default result policy, got %q", cfg.Results.Policy)
	}
	if !cfg.Capabilities.AllowAll {
		t.Fatalf("expected dev default allow-all capabilities")
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pawsense.yaml")
	content := []byte(`
server:
  addr: ":9090"
inference:
  base_url: "http://file.local"
  health_base_url: "http://skin.local"
  timeout: 12s
results:
  policy: last-arrival
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("ALERT_TIMEOUT", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("env PORT should win over file, got %q", cfg.Server.Addr)
	}
	if cfg.Inference.HealthBaseURL != "http://skin.local" || cfg.Inference.AlertBaseURL != "http://skin.local" {
		t.Fatalf("alert base should follow health base, got %#v", cfg.Inference)
	}
	if cfg.Inference.Timeout != 12*time.Second || cfg.Inference.AlertTimeout != 2*time.Second {
		t.Fatalf("unexpected timeouts %#v", cfg.Inference)
	}
	if cfg.Results.Policy != "last-arrival" {
		t.Fatalf("expected file policy, got %q", cfg.Results.Policy)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RESULT_POLICY", "random")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid RESULT_POLICY")
	}

	t.Setenv("RESULT_POLICY", "")
	t.Setenv("REDIS_DB", "zero")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REDIS_DB")
	}
}
