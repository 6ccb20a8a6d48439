package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

type fakeSettings map[types.SettingKey]any

func (f fakeSettings) ReadPersistedMode(key types.SettingKey) types.Mode {
	m, _ := f[key].(types.Mode)
	return m
}

func (f fakeSettings) ReadPersistedBool(key types.SettingKey) bool {
	b, _ := f[key].(bool)
	return b
}

type fakeFlags map[string]bool

func (f fakeFlags) Enabled(name string) bool { return f[name] }

type fakeSignal map[string]bool

func (f fakeSignal) IsSet(name string) bool { return f[name] }

func TestCompositeDelegates(t *testing.T) {
	key := types.NewSettingKey("diagnostics", "mode")
	gc := types.NewSettingKey("host", "oop_server_gc")

	c := NewComposite(
		fakeSettings{key: types.ModePush, gc: true},
		fakeFlags{"f": true},
		fakeSignal{"ENV": true},
	)

	assert.Equal(t, types.ModePush, c.ReadPersistedMode(key))
	assert.True(t, c.ReadPersistedBool(gc))
	assert.True(t, c.ReadFeatureFlag("f"))
	assert.False(t, c.ReadFeatureFlag(""))
	assert.True(t, c.ReadEnvironmentSignal("ENV"))
	assert.False(t, c.ReadEnvironmentSignal("OTHER"))
}

func TestCompositeNilCollaborators(t *testing.T) {
	var c Composite
	key := types.NewSettingKey("diagnostics", "mode")

	assert.Equal(t, types.ModeDefault, c.ReadPersistedMode(key))
	assert.False(t, c.ReadPersistedBool(key))
	assert.False(t, c.ReadFeatureFlag("f"))
	assert.False(t, c.ReadEnvironmentSignal("ENV"))
}

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	assert.True(t, s.HasMode(types.NewSettingKey("diagnostics", "mode")))
	assert.False(t, s.HasMode(s.Host.Width))
	assert.Equal(t, DefaultRestrictedHostSignal, s.Diagnostics.RestrictedHostSignal)
	assert.NotEmpty(t, s.Host.ServerGC.Flag)
	assert.NotEmpty(t, s.Host.CoreCLR.Flag)

	descs := s.Descriptors()
	assert.Len(t, descs, len(s.Diagnostics.Modes)+3)

	// Width carries no flag
	for _, d := range descs {
		if d.Key == s.Host.Width {
			assert.Empty(t, d.Flag)
		}
	}
}

func TestWithRestrictedHostSignalCopies(t *testing.T) {
	base := DefaultSchema()
	custom := base.WithRestrictedHostSignal("MY_HOST")

	assert.Equal(t, "MY_HOST", custom.Diagnostics.RestrictedHostSignal)
	assert.Equal(t, DefaultRestrictedHostSignal, base.Diagnostics.RestrictedHostSignal)

	custom.Diagnostics.Modes[0] = types.NewSettingKey("x", "y")
	assert.Equal(t, types.NewSettingKey("diagnostics", "mode"), base.Diagnostics.Modes[0])
}
