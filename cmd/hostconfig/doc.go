// Command hostconfig resolves the analysis engine's layered options.
//
// By default it serves a read-only inspection API (see internal/api/http)
// and /metrics. With -print it resolves every option once, prints a JSON
// report to stdout and exits:
//
//	hostconfig -print -settings ~/.engine/settings.yaml -flags flags.json
//	{
//	  "modes": {"diagnostics.mode": "pull", ...},
//	  "host": {"use_64bit": true, "server_gc": false, "coreclr": true},
//	  "args": ["--64bit", "--coreclr"]
//	}
//
// Environment variables (HOSTCONFIG_*) are described in
// internal/infrastructure/config; command-line flags override them.
package main
