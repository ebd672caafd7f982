package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `base_url: https://apis.data.go.kr/B552735/kisedKstartupService01
service_key: file-key
timeout: 10s
retry:
  max_attempts: 5
  base_delay: 200ms
  max_delay: 5s
  multiplier: 1.5
  jitter: false
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://apis.data.go.kr/B552735/kisedKstartupService01" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.ServiceKey != "file-key" {
		t.Errorf("unexpected service key %q", cfg.ServiceKey)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Retry.BaseDelay != 200*time.Millisecond {
		t.Errorf("unexpected retry config %+v", cfg.Retry)
	}
	if cfg.Retry.Jitter {
		t.Error("expected jitter disabled")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KPD_BASE_URL", "https://api.example.com")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected default max attempts 3, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelay != 500*time.Millisecond {
		t.Errorf("expected default base delay, got %v", cfg.Retry.BaseDelay)
	}
	if !cfg.Retry.Jitter {
		t.Error("expected jitter enabled by default")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KPD_BASE_URL", "https://env.example.com")
	t.Setenv("KPD_SERVICE_KEY", "env-key")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.ServiceKey != "env-key" {
		t.Errorf("unexpected service key %q", cfg.ServiceKey)
	}
}

func TestLoad_MissingBaseURLFailsValidation(t *testing.T) {
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected validation error for a missing base url")
	}
}

func TestRetry_PolicyConfig(t *testing.T) {
	r := Retry{
		MaxAttempts: 4,
		BaseDelay:   time.Second,
		MaxDelay:    time.Minute,
		Multiplier:  3,
		Jitter:      true,
	}
	cfg := r.PolicyConfig()
	if cfg.MaxAttempts != 4 || cfg.BaseDelay != time.Second || cfg.Multiplier != 3 {
		t.Errorf("unexpected policy config %+v", cfg)
	}
}
