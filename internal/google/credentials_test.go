package google

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredentials_PrefersFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))

	// Env var is present but must be ignored when the file exists.
	t.Setenv(EnvServiceAccountCredentials, base64.StdEncoding.EncodeToString([]byte(`{"from":"env"}`)))

	data, err := ResolveCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, string(data))
}

func TestResolveCredentials_FallsBackToEnv(t *testing.T) {
	t.Setenv(EnvServiceAccountCredentials, base64.StdEncoding.EncodeToString([]byte(`{"from":"env"}`)))

	// Path that does not exist falls through to the env var.
	data, err := ResolveCredentials(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"from":"env"}`, string(data))
}

func TestResolveCredentials_NoSource(t *testing.T) {
	t.Setenv(EnvServiceAccountCredentials, "")

	_, err := ResolveCredentials("")
	require.Error(t, err)

	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
	assert.Contains(t, err.Error(), EnvServiceAccountCredentials)
}

func TestResolveCredentials_InvalidBase64(t *testing.T) {
	t.Setenv(EnvServiceAccountCredentials, "not-valid-base64!!!")

	_, err := ResolveCredentials("")
	require.Error(t, err)

	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
	assert.Error(t, confErr.Unwrap())
}

func TestConfigurationError_Message(t *testing.T) {
	err := &ConfigurationError{Reason: "something is off"}
	assert.Equal(t, "calendar credentials: something is off", err.Error())

	wrapped := &ConfigurationError{Reason: "decode failed", Err: errors.New("boom")}
	assert.Contains(t, wrapped.Error(), "decode failed")
	assert.Contains(t, wrapped.Error(), "boom")
}
