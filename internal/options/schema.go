package options

import (
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// Descriptor describes one setting for listings and validation
type Descriptor struct {
	Key         types.SettingKey `json:"key"`
	Kind        string           `json:"kind"` // "mode" or "bool"
	Flag        string           `json:"flag,omitempty"`
	Description string           `json:"description"`
}

// DiagnosticOptions lists the per-language diagnostic mode settings and the
// inputs shared by all of them
type DiagnosticOptions struct {
	// Modes are the independently resolvable mode settings
	Modes []types.SettingKey
	// PullFlag forces pull mode for unset settings
	PullFlag string
	// RestrictedHostSignal names the environment variable that forces pull
	RestrictedHostSignal string
}

// HostOptions lists the out-of-process host toggles
type HostOptions struct {
	// Width selects a 64-bit host; gated by the platform, never by a flag
	Width types.SettingKey
	// ServerGC selects the server garbage collector
	ServerGC types.BoolToggle
	// CoreCLR selects the .NET Core runtime flavor
	CoreCLR types.BoolToggle
}

// Schema is the full option set
type Schema struct {
	Diagnostics DiagnosticOptions
	Host        HostOptions
}

const (
	// DefaultRestrictedHostSignal is set to "1" by the remote-editing host
	DefaultRestrictedHostSignal = "LSP_RESTRICTED_HOST"
	// DefaultPullFlag enables pull diagnostics for unconfigured languages
	DefaultPullFlag = "Lsp.PullDiagnostics"
)

// DefaultSchema returns the engine's built-in options
func DefaultSchema() *Schema {
	return &Schema{
		Diagnostics: DiagnosticOptions{
			Modes: []types.SettingKey{
				types.NewSettingKey("diagnostics", "mode"),
				types.NewSettingKey("diagnostics", "razor_mode"),
				types.NewSettingKey("diagnostics", "xaml_mode"),
			},
			PullFlag:             DefaultPullFlag,
			RestrictedHostSignal: DefaultRestrictedHostSignal,
		},
		Host: HostOptions{
			Width: types.NewSettingKey("host", "oop_64bit"),
			ServerGC: types.BoolToggle{
				Key:  types.NewSettingKey("host", "oop_server_gc"),
				Flag: "Host.OOP.ServerGC",
			},
			CoreCLR: types.BoolToggle{
				Key:  types.NewSettingKey("host", "oop_coreclr"),
				Flag: "Host.OOP.CoreCLR",
			},
		},
	}
}

// WithRestrictedHostSignal returns a copy of the schema reading a different
// restricted-host variable
func (s *Schema) WithRestrictedHostSignal(name string) *Schema {
	out := *s
	out.Diagnostics.Modes = append([]types.SettingKey(nil), s.Diagnostics.Modes...)
	out.Diagnostics.RestrictedHostSignal = name
	return &out
}

// HasMode reports whether key is a known mode setting
func (s *Schema) HasMode(key types.SettingKey) bool {
	for _, k := range s.Diagnostics.Modes {
		if k == key {
			return true
		}
	}
	return false
}

// Descriptors lists every setting in the schema
func (s *Schema) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(s.Diagnostics.Modes)+3)
	for _, key := range s.Diagnostics.Modes {
		out = append(out, Descriptor{
			Key:         key,
			Kind:        "mode",
			Flag:        s.Diagnostics.PullFlag,
			Description: "Diagnostic reporting mode (default, push, pull)",
		})
	}
	out = append(out,
		Descriptor{
			Key:         s.Host.Width,
			Kind:        "bool",
			Description: "Run the out-of-process host as 64-bit (64-bit platforms only)",
		},
		Descriptor{
			Key:         s.Host.ServerGC.Key,
			Kind:        "bool",
			Flag:        s.Host.ServerGC.Flag,
			Description: "Use the server garbage collector in the out-of-process host",
		},
		Descriptor{
			Key:         s.Host.CoreCLR.Key,
			Kind:        "bool",
			Flag:        s.Host.CoreCLR.Flag,
			Description: "Run the out-of-process host on .NET Core",
		},
	)
	return out
}
