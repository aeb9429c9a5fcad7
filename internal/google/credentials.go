package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	oauth2google "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EnvServiceAccountCredentials is the environment variable holding a base64
// encoded service account JSON document. It is the fallback source when no
// key file is provided.
const EnvServiceAccountCredentials = "GOOGLE_SERVICE_ACCOUNT_CREDENTIALS"

// ConfigurationError indicates that no usable credential source is available
// or that the configured source could not be decoded. It terminates the
// authentication step; it is never flattened into a tool result.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calendar credentials: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("calendar credentials: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CredentialConfig describes where the service account key comes from and,
// optionally, which user the service account impersonates.
type CredentialConfig struct {
	// ServiceAccountFile is a path to a service account JSON key file.
	// Preferred over the environment variable when the file exists.
	ServiceAccountFile string

	// ImpersonateUser is the email address of a user the service account
	// delegates access to. Empty means no impersonation.
	ImpersonateUser string
}

// ResolveCredentials returns the raw service account JSON, reading the key
// file when it exists and falling back to the base64 encoded environment
// variable otherwise.
func ResolveCredentials(path string) ([]byte, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("failed to read service account file %s", path), Err: err}
			}
			return data, nil
		}
	}

	encoded := os.Getenv(EnvServiceAccountCredentials)
	if encoded == "" {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("neither a valid service account file nor the %s environment variable was found", EnvServiceAccountCredentials)}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("failed to base64-decode %s", EnvServiceAccountCredentials), Err: err}
	}
	return data, nil
}

// NewCalendarService builds a Calendar service authenticated with the
// resolved service account credentials, scoped to calendar read/write.
func NewCalendarService(ctx context.Context, cfg CredentialConfig) (*calendar.Service, error) {
	data, err := ResolveCredentials(cfg.ServiceAccountFile)
	if err != nil {
		return nil, err
	}

	conf, err := oauth2google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, &ConfigurationError{Reason: "failed to parse service account JSON", Err: err}
	}
	if cfg.ImpersonateUser != "" {
		conf.Subject = cfg.ImpersonateUser
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return svc, nil
}
