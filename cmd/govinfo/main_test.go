package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openfederal/govinfo-client/pkg/client"
)

// resetFlags restores the shared flag state around a test.
func resetFlags(t *testing.T) {
	t.Helper()

	savedAPIKey, savedBaseURL, savedConfig, savedRedis := flagAPIKey, flagBaseURL, flagConfig, flagRedis
	t.Cleanup(func() {
		flagAPIKey, flagBaseURL, flagConfig, flagRedis = savedAPIKey, savedBaseURL, savedConfig, savedRedis
	})

	flagAPIKey, flagBaseURL, flagConfig, flagRedis = "", "", "", ""
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
api_key: FILE_KEY
base_url: https://staging.example.gov
page_size: 50
requests_per_second: 2.5
max_pages: 7
`)

	cfg, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig: %v", err)
	}

	if cfg.APIKey != "FILE_KEY" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://staging.example.gov" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d", cfg.PageSize)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v", cfg.RequestsPerSecond)
	}
	if cfg.MaxPages != 7 {
		t.Errorf("MaxPages = %d", cfg.MaxPages)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	if _, err := loadFileConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := writeConfigFile(t, "api_key: [not: valid")
	if _, err := loadFileConfig(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		file    string
		flag    string
		wantKey string
	}{
		{
			name:    "env only",
			env:     "ENV_KEY",
			wantKey: "ENV_KEY",
		},
		{
			name:    "file beats env",
			env:     "ENV_KEY",
			file:    "FILE_KEY",
			wantKey: "FILE_KEY",
		},
		{
			name:    "flag beats file and env",
			env:     "ENV_KEY",
			file:    "FILE_KEY",
			flag:    "FLAG_KEY",
			wantKey: "FLAG_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			t.Setenv("GOVINFO_API_KEY", tt.env)

			if tt.file != "" {
				flagConfig = writeConfigFile(t, "api_key: "+tt.file)
			}
			flagAPIKey = tt.flag

			cfg, _, err := resolveConfig()
			if err != nil {
				t.Fatalf("resolveConfig: %v", err)
			}
			if cfg.APIKey != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", cfg.APIKey, tt.wantKey)
			}
		})
	}
}

func TestResolveConfig_MissingAPIKey(t *testing.T) {
	resetFlags(t)
	t.Setenv("GOVINFO_API_KEY", "")

	_, _, err := resolveConfig()
	if err == nil {
		t.Fatal("Expected error when no api key is configured")
	}
	if !strings.Contains(err.Error(), "api key required") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	resetFlags(t)
	t.Setenv("GOVINFO_API_KEY", "ENV_KEY")

	cfg, _, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}

	if cfg.BaseURL != client.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Redis != nil {
		t.Error("Redis should be disabled without an address")
	}
}

func TestResolveConfig_FileOverrides(t *testing.T) {
	resetFlags(t)
	t.Setenv("GOVINFO_API_KEY", "ENV_KEY")

	flagConfig = writeConfigFile(t, `
base_url: https://staging.example.gov
requests_per_second: 1.5
`)

	cfg, _, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}

	if cfg.BaseURL != "https://staging.example.gov" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestsPerSecond != 1.5 {
		t.Errorf("RequestsPerSecond = %v", cfg.RequestsPerSecond)
	}

	flagBaseURL = "https://flag.example.gov"
	cfg, _, err = resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.BaseURL != "https://flag.example.gov" {
		t.Errorf("BaseURL = %q, flag should win", cfg.BaseURL)
	}
}
