// Package server provides the MCP server context, health checks, and the
// dedicated metrics server for the gcalendar-mcp application.
//
// # Key Components
//
// ServerContext holds the dependencies shared by all tool handlers:
//   - The Google Calendar client built from service account credentials at startup
//   - The metrics recorder and audit logger from the instrumentation package
//   - A cancellable context used for coordinated shutdown
//
// HealthChecker exposes Kubernetes-style probe endpoints (/healthz, /readyz,
// /healthz/detailed) for the HTTP transport. Readiness includes a check that
// the Calendar client was configured.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from the main MCP traffic.
package server
