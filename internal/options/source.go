package options

import (
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// Source is the read contract the resolvers consume. Every read returns a
// default-bearing value when nothing is configured.
type Source interface {
	// ReadEnvironmentSignal is true iff the named variable is set to "1"
	ReadEnvironmentSignal(name string) bool
	// ReadPersistedMode returns ModeDefault if never configured
	ReadPersistedMode(key types.SettingKey) types.Mode
	// ReadPersistedBool returns false if never configured
	ReadPersistedBool(key types.SettingKey) bool
	// ReadFeatureFlag returns false if the flag service has no record
	ReadFeatureFlag(name string) bool
}

// SettingsReader is the persisted-settings half of Source
type SettingsReader interface {
	ReadPersistedMode(key types.SettingKey) types.Mode
	ReadPersistedBool(key types.SettingKey) bool
}

// FlagReader is the feature-flag half of Source
type FlagReader interface {
	Enabled(name string) bool
}

// SignalReader answers the restricted-host capability query
type SignalReader interface {
	IsSet(name string) bool
}

// Composite joins the three collaborators into a Source
type Composite struct {
	Settings SettingsReader
	Flags    FlagReader
	Signal   SignalReader
}

// NewComposite creates a composite source
func NewComposite(settings SettingsReader, flags FlagReader, signal SignalReader) *Composite {
	return &Composite{
		Settings: settings,
		Flags:    flags,
		Signal:   signal,
	}
}

// ReadEnvironmentSignal implements Source
func (c *Composite) ReadEnvironmentSignal(name string) bool {
	if c.Signal == nil {
		return false
	}
	return c.Signal.IsSet(name)
}

// ReadPersistedMode implements Source
func (c *Composite) ReadPersistedMode(key types.SettingKey) types.Mode {
	if c.Settings == nil {
		return types.ModeDefault
	}
	return c.Settings.ReadPersistedMode(key)
}

// ReadPersistedBool implements Source
func (c *Composite) ReadPersistedBool(key types.SettingKey) bool {
	if c.Settings == nil {
		return false
	}
	return c.Settings.ReadPersistedBool(key)
}

// ReadFeatureFlag implements Source
func (c *Composite) ReadFeatureFlag(name string) bool {
	if c.Flags == nil || name == "" {
		return false
	}
	return c.Flags.Enabled(name)
}
