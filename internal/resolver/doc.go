// Package resolver decides the effective diagnostic mode for a setting.
//
// Precedence, first match wins:
//
//  1. Restricted host signal set: pull. Only one delivery channel exists there.
//  2. Persisted mode set: the persisted mode.
//  3. Otherwise pull if the pull feature flag is on, else push.
//
// ModeResolver caches one result per setting key for its lifetime. A cached
// mode does not follow later changes to settings or flags.
package resolver
