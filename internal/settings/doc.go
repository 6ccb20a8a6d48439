/*
Package settings holds persisted user and workspace settings in memory.

Settings are loaded once at startup from YAML, TOML or JSON files laid out
as namespace -> name -> value:

	diagnostics:
	  mode: pull
	host:
	  server_gc: true

Nested maps below the namespace are flattened with dots, so
host: {oop: {coreclr: true}} becomes the key host.oop.coreclr.

Reads never block on I/O. A key that was never configured reads as
ModeDefault or false.
*/
package settings
