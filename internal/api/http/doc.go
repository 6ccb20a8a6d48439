// Package http exposes resolved options over a small read-only JSON API.
//
// Routes:
//   - GET /health: status, uptime and counters
//   - GET /schema: option descriptors
//   - GET /modes and GET /modes/:namespace/:name: diagnostic modes
//   - GET /host: out-of-process host variant and launch switches
//
// The API never changes settings.
package http
