// Package calendar_tools provides MCP (Model Context Protocol) tools for Google Calendar operations.
//
// This package exposes Google Calendar functionality through a standardized MCP interface,
// allowing AI assistants to list, create, modify, move and delete events on calendars
// the configured service account can reach.
//
// All tools answer with the legacy JSON envelopes from the calendar package: successful
// calls return the operation's envelope and every failure is flattened to a single
// {"error": "..."} object regardless of its cause.
package calendar_tools
