// Package types provides shared data structures for option resolution.
//
// Core Types:
//   - SettingKey: identity of one logical setting (namespace + name)
//   - Mode: tri-state diagnostic mode (default, push, pull)
//   - BoolToggle: a boolean setting paired with a feature flag
//   - Reason: which input decided a resolved mode
//
// Example Usage:
//
//	key := types.NewSettingKey("diagnostics", "mode")
//	toggle := types.BoolToggle{Key: types.NewSettingKey("host", "server_gc"), Flag: "Host.ServerGC"}
package types
