package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xpressai/gcalendar-mcp/internal/google"
)

func TestCredentialSource(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key.json")
	if err := os.WriteFile(keyFile, []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "no path falls back to environment",
			path:     "",
			expected: "env",
		},
		{
			name:     "existing file",
			path:     keyFile,
			expected: "file",
		},
		{
			name:     "missing file falls back to environment",
			path:     filepath.Join(dir, "missing.json"),
			expected: "env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := credentialSource(tt.path)
			if result != tt.expected {
				t.Errorf("credentialSource(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestNewServeCmd_Flags(t *testing.T) {
	cmd := newServeCmd()

	flags := []struct {
		name     string
		defValue string
	}{
		{"transport", "stdio"},
		{"http-addr", ":8080"},
		{"metrics-enabled", "true"},
		{"metrics-addr", ":9090"},
		{"service-account-file", ""},
		{"impersonate", ""},
	}

	for _, f := range flags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil {
			t.Errorf("expected flag %q to be defined", f.name)
			continue
		}
		if flag.DefValue != f.defValue {
			t.Errorf("flag %q default = %q, expected %q", f.name, flag.DefValue, f.defValue)
		}
	}
}

func TestLoadMetricsEnvVars(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		envEnabled      string
		envAddr         string
		expectedEnabled bool
		expectedAddr    string
	}{
		{
			name:            "defaults without env",
			expectedEnabled: true,
			expectedAddr:    ":9090",
		},
		{
			name:            "env disables metrics",
			envEnabled:      "false",
			expectedEnabled: false,
			expectedAddr:    ":9090",
		},
		{
			name:            "env overrides addr",
			envAddr:         ":9999",
			expectedEnabled: true,
			expectedAddr:    ":9999",
		},
		{
			name:            "flag wins over env",
			args:            []string{"--metrics-enabled=true", "--metrics-addr=:7070"},
			envEnabled:      "false",
			envAddr:         ":9999",
			expectedEnabled: true,
			expectedAddr:    ":7070",
		},
		{
			name:            "invalid env value keeps default",
			envEnabled:      "maybe",
			expectedEnabled: true,
			expectedAddr:    ":9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("METRICS_ENABLED", tt.envEnabled)
			t.Setenv("METRICS_ADDR", tt.envAddr)

			cmd := newServeCmd()
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			enabled, err := cmd.Flags().GetBool("metrics-enabled")
			if err != nil {
				t.Fatalf("failed to read metrics-enabled: %v", err)
			}
			addr, err := cmd.Flags().GetString("metrics-addr")
			if err != nil {
				t.Fatalf("failed to read metrics-addr: %v", err)
			}

			config := MetricsConfig{Enabled: enabled, Addr: addr}
			loadMetricsEnvVars(cmd, &config)

			if config.Enabled != tt.expectedEnabled {
				t.Errorf("Enabled = %v, expected %v", config.Enabled, tt.expectedEnabled)
			}
			if config.Addr != tt.expectedAddr {
				t.Errorf("Addr = %q, expected %q", config.Addr, tt.expectedAddr)
			}
		})
	}
}

func TestRunServe_WithoutCredentials(t *testing.T) {
	// Startup must fail when no credential source is configured instead of
	// deferring the failure to the first tool call.
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_CREDENTIALS", "")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")

	err := runServe("stdio", false, ":0", false,
		google.CredentialConfig{}, MetricsConfig{Enabled: false})
	if err == nil {
		t.Fatal("expected error when no credentials are configured")
	}
	if !strings.Contains(err.Error(), "Calendar service") {
		t.Errorf("expected credential failure, got %v", err)
	}
}
