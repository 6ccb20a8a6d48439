// Package environment answers the one process-level capability question the
// resolvers need: whether the engine runs inside a restricted host.
package environment

import "os"

// Lookup reads a process environment variable
type Lookup func(name string) (string, bool)

// Signal is a boolean capability query backed by the process environment.
// It is not a general settings source: the only accepted "on" value is "1".
type Signal struct {
	lookup Lookup
}

// New creates a signal reader over the real process environment
func New() *Signal {
	return &Signal{lookup: os.LookupEnv}
}

// NewWithLookup creates a signal reader over a custom lookup, for tests
func NewWithLookup(lookup Lookup) *Signal {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Signal{lookup: lookup}
}

// IsSet reports whether the named variable is set to the literal "1".
// The variable is read on every call.
func (s *Signal) IsSet(name string) bool {
	if name == "" {
		return false
	}
	value, ok := s.lookup(name)
	return ok && value == "1"
}
