// Package server wires the option resolvers together.
//
// It is the only place that knows the concrete collaborators: it loads
// persisted settings and feature flags, builds the environment signal,
// constructs the mode resolver and host variant policy once, and exposes
// them through the inspection HTTP API.
//
// Example Usage:
//
//	srv, err := server.New(ctx, config.LoadOrDefault(), server.Deps{})
//	report := srv.Report()
package server
