package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ResultsPerPage != 10 {
		t.Fatalf("expected 10 results per page, got %d", cfg.ResultsPerPage)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected default API URL, got %q", cfg.APIURL)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "forkify.yaml")
	data := "api_key: from-file\nresults_per_page: 5\ntimeout: 3s\noffline: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("env should win over file, got %q", cfg.APIKey)
	}
	if cfg.ResultsPerPage != 5 {
		t.Fatalf("expected 5 results per page, got %d", cfg.ResultsPerPage)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Timeout)
	}
	if !cfg.Offline {
		t.Fatal("expected offline from file")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timeout", EnvTimeout, "soon"},
		{"bad page size", EnvResultsPerPage, "ten"},
		{"zero page size", EnvResultsPerPage, "0"},
		{"bad offline", EnvOffline, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
