// Package config provides 12-factor configuration for the hostconfig service.
//
// Configuration is loaded from HOSTCONFIG_* environment variables with
// sensible defaults. CLI flags can override them for development.
//
// Configuration Sections:
//   - Server: inspection HTTP server (port, host)
//   - Settings: persisted settings file and glob
//   - Flags: feature flag file, remote URL, timeout, retries
//   - Host: restricted-host signal variable name
//   - Logging: log level and output format
//   - RateLimit: per-client rate limiting for the inspection API
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Serving on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - HOSTCONFIG_SERVER_PORT, HOSTCONFIG_SERVER_HOST
//   - HOSTCONFIG_SETTINGS_FILE, HOSTCONFIG_SETTINGS_GLOB
//   - HOSTCONFIG_FLAGS_FILE, HOSTCONFIG_FLAGS_URL, HOSTCONFIG_FLAGS_TIMEOUT, HOSTCONFIG_FLAGS_RETRIES
//   - HOSTCONFIG_HOST_RESTRICTED_SIGNAL
//   - HOSTCONFIG_LOGGING_LEVEL, HOSTCONFIG_LOGGING_DEVELOPMENT
//   - HOSTCONFIG_RATE_LIMIT_REQUESTS_PER_SECOND, HOSTCONFIG_RATE_LIMIT_BURST, HOSTCONFIG_RATE_LIMIT_ENABLED
package config
