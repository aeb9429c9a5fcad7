// Package google resolves service account credentials and builds an
// authenticated Google Calendar service.
//
// Credentials come from one of two sources, in order of preference:
//   - a service account JSON key file on disk
//   - the GOOGLE_SERVICE_ACCOUNT_CREDENTIALS environment variable, holding
//     the same JSON document base64 encoded
//
// The resulting *calendar.Service is created once at startup and shared,
// read-only, by every tool for the lifetime of the process. Token refresh is
// handled by the oauth2 JWT transport underneath.
package google
