package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// envVars lists every variable Load reads.
var envVars = []string{
	"TMDB_API_KEY",
	"TMDBSEARCH_TMDB_API_KEY",
	"TMDBSEARCH_TMDB_BASE_URL",
	"TMDBSEARCH_LOG_LEVEL",
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Chdir(t.TempDir())
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const fullYAML = `
tmdb:
  api_key: yaml-key
  base_url: http://localhost:9999/3
  timeout: 3s
app:
  log_level: debug
`

type validateCase struct {
	name    string
	modify  func(*Config)
	wantErr string
}

// validConfig returns a minimal Config that passes Validate().
func validConfig() Config {
	return Config{
		TMDb: TMDbConfig{APIKey: "tmdb-key", BaseURL: defaultBaseURL, Timeout: time.Second},
		App:  AppConfig{LogLevel: "info"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []validateCase{
		{"valid", nil, ""},
		{"missing_api_key_allowed", func(c *Config) { c.TMDb.APIKey = "" }, ""},
		{"base_url_ftp", func(c *Config) { c.TMDb.BaseURL = "ftp://api.themoviedb.org" }, "must use http or https"},
		{"base_url_no_host", func(c *Config) { c.TMDb.BaseURL = "http://" }, "missing host"},
		{"negative_timeout", func(c *Config) { c.TMDb.Timeout = -time.Second }, "tmdb.timeout must be positive"},
		{"invalid_log_level", func(c *Config) { c.App.LogLevel = "trace" }, "app.log_level must be one of"},
		{"warning_accepted", func(c *Config) { c.App.LogLevel = "warning" }, ""},
		{"upper_case_level", func(c *Config) { c.App.LogLevel = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			if tt.modify != nil {
				tt.modify(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"valid_http", "http://localhost:8080", ""},
		{"valid_https", "https://api.themoviedb.org/3", ""},
		{"ftp_scheme", "ftp://localhost", "must use http or https"},
		{"no_scheme", "api.themoviedb.org/3", "must use http or https"},
		{"empty_string", "", "must use http or https"},
		{"missing_host", "http://", "missing host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateURL(tt.url, "test.url")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		cfg := Config{}
		cfg.setDefaults()
		if cfg.TMDb.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("BaseURL = %q", cfg.TMDb.BaseURL)
		}
		if cfg.TMDb.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v", cfg.TMDb.Timeout)
		}
		if cfg.App.LogLevel != "warn" {
			t.Errorf("LogLevel = %q", cfg.App.LogLevel)
		}
	})

	t.Run("preserved", func(t *testing.T) {
		t.Parallel()
		cfg := Config{
			TMDb: TMDbConfig{BaseURL: "http://mirror/3", Timeout: time.Minute},
			App:  AppConfig{LogLevel: "debug"},
		}
		cfg.setDefaults()
		if cfg.TMDb.BaseURL != "http://mirror/3" || cfg.TMDb.Timeout != time.Minute || cfg.App.LogLevel != "debug" {
			t.Errorf("defaults overwrote explicit values: %+v", cfg)
		}
	})
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeTempYAML(t, fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "yaml-key" {
		t.Errorf("APIKey = %q, want yaml-key", cfg.TMDb.APIKey)
	}
	if cfg.TMDb.BaseURL != "http://localhost:9999/3" {
		t.Errorf("BaseURL = %q", cfg.TMDb.BaseURL)
	}
	if cfg.TMDb.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.TMDb.Timeout)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.App.LogLevel)
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("expected default base URL, got %q", cfg.TMDb.BaseURL)
	}
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, DefaultFileName), []byte("tmdb:\n  api_key: home-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "home-key" {
		t.Errorf("APIKey = %q, want home-key", cfg.TMDb.APIKey)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("invalid_yaml", func(t *testing.T) {
		_, err := Load(writeTempYAML(t, "{{invalid yaml}}"))
		if err == nil || !strings.Contains(err.Error(), "failed to parse") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("file_not_found", func(t *testing.T) {
		_, err := Load("/nonexistent/path/config.yaml")
		if err == nil || !strings.Contains(err.Error(), "config file not found") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("path_is_directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "directory") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid_values", func(t *testing.T) {
		_, err := Load(writeTempYAML(t, "tmdb:\n  base_url: ftp://x\n"))
		if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("tmdb_api_key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TMDB_API_KEY", "env-key")
		cfg, err := Load(writeTempYAML(t, fullYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TMDb.APIKey != "env-key" {
			t.Errorf("APIKey = %q, want env-key", cfg.TMDb.APIKey)
		}
	})

	t.Run("prefixed_key_wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TMDB_API_KEY", "env-key")
		t.Setenv("TMDBSEARCH_TMDB_API_KEY", "prefixed-key")
		cfg, err := Load(writeTempYAML(t, fullYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TMDb.APIKey != "prefixed-key" {
			t.Errorf("APIKey = %q, want prefixed-key", cfg.TMDb.APIKey)
		}
	})

	t.Run("base_url_and_log_level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TMDBSEARCH_TMDB_BASE_URL", "https://proxy.example.com/3")
		t.Setenv("TMDBSEARCH_LOG_LEVEL", "error")
		cfg, err := Load(writeTempYAML(t, fullYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.TMDb.BaseURL != "https://proxy.example.com/3" {
			t.Errorf("BaseURL = %q", cfg.TMDb.BaseURL)
		}
		if cfg.App.LogLevel != "error" {
			t.Errorf("LogLevel = %q", cfg.App.LogLevel)
		}
	})
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(".env", []byte("TMDB_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(writeTempYAML(t, "app:\n  log_level: info\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "dotenv-key" {
		t.Errorf("APIKey = %q, want dotenv-key", cfg.TMDb.APIKey)
	}
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TMDB_API_KEY", "real-env")
	if err := os.WriteFile(".env", []byte("TMDB_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(writeTempYAML(t, "app:\n  log_level: info\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TMDb.APIKey != "real-env" {
		t.Errorf("APIKey = %q, want real-env", cfg.TMDb.APIKey)
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.level); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger("info", &buf)
	logger.Debug("hidden")
	logger.Info("shown", slog.String("k", "v"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON log line, got %s", out)
	}
}
