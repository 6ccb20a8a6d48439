package types

import (
	"fmt"
	"strings"
)

// Mode is the tri-state diagnostic reporting mode.
type Mode int

const (
	// ModeDefault means no explicit choice was made
	ModeDefault Mode = iota
	// ModePush delivers diagnostics by server-initiated notifications
	ModePush
	// ModePull delivers diagnostics on client request
	ModePull
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModePush:
		return "push"
	case ModePull:
		return "pull"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the three defined modes
func (m Mode) Valid() bool {
	return m >= ModeDefault && m <= ModePull
}

// IsSet reports whether the mode carries an explicit choice
func (m Mode) IsSet() bool {
	return m != ModeDefault
}

// ParseMode parses a mode name, case-insensitively. The empty string is
// ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ModeDefault, nil
	case "push":
		return ModePush, nil
	case "pull":
		return ModePull, nil
	default:
		return ModeDefault, fmt.Errorf("unknown diagnostic mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Reason names the input that decided a resolved mode.
type Reason string

const (
	// ReasonRestrictedHost means the host capability signal forced pull
	ReasonRestrictedHost Reason = "restricted_host"
	// ReasonPersisted means an explicit persisted mode was used
	ReasonPersisted Reason = "persisted"
	// ReasonFeatureFlag means the pull feature flag selected pull
	ReasonFeatureFlag Reason = "feature_flag"
	// ReasonDefault means nothing was configured and push applied
	ReasonDefault Reason = "default"
)
