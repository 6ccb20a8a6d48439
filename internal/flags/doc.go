// Package flags is the feature-flag collaborator: an in-memory snapshot of
// named boolean flags. Flags can only force behavior on; a flag the service
// has no record of reads as false.
//
// The snapshot is filled at startup from a JSON file or from one remote fetch
// ({"flags": {"Lsp.PullDiagnostics": true}}). Reads never touch the network.
package flags
