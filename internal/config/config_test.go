package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		def       string
		want      string
	}{
		{
			name:      "variable set",
			key:       "SNOOZE_TEST_VAR",
			value:     "from-env",
			shouldSet: true,
			def:       "fallback",
			want:      "from-env",
		},
		{
			name: "variable missing",
			key:  "SNOOZE_TEST_VAR_MISSING",
			def:  "fallback",
			want: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}
			if got := getenv(tt.key, tt.def); got != tt.want {
				t.Errorf("getenv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{name: "valid duration", value: "30s", def: time.Second, want: 30 * time.Second},
		{name: "invalid duration falls back", value: "not-a-duration", def: time.Second, want: time.Second},
		{name: "empty falls back", value: "", def: 2 * time.Second, want: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("SNOOZE_TEST_DURATION", tt.value)
			}
			if got := mustDuration("SNOOZE_TEST_DURATION", tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := "api_base_url: http://localhost:9000\nhttp_timeout: 3s\npretty_log: \"false\"\nredis_db: \"2\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	f := loadFile(path)

	if got := f.str("api_base_url", "default"); got != "http://localhost:9000" {
		t.Errorf("str(api_base_url) = %v, want http://localhost:9000", got)
	}
	if got := f.duration("http_timeout", time.Second); got != 3*time.Second {
		t.Errorf("duration(http_timeout) = %v, want 3s", got)
	}
	if got := f.boolean("pretty_log", true); got != false {
		t.Errorf("boolean(pretty_log) = %v, want false", got)
	}
	if got := f.integer("redis_db", 0); got != 2 {
		t.Errorf("integer(redis_db) = %v, want 2", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	f := loadFile("/nonexistent/config.yaml")
	if got := f.str("api_base_url", DefaultAPIBaseURL); got != DefaultAPIBaseURL {
		t.Errorf("missing file should fall back to default, got %v", got)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: http://from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("SNOOZE_CONFIG", path)
	t.Setenv("SNOOZE_API_BASE_URL", "http://from-env")

	cfg := Load()
	if cfg.APIBaseURL != "http://from-env" {
		t.Errorf("APIBaseURL = %v, want http://from-env", cfg.APIBaseURL)
	}
}
