package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSet(t *testing.T) {
	t.Setenv("HOSTCONFIG_TEST_SIGNAL", "1")
	assert.True(t, New().IsSet("HOSTCONFIG_TEST_SIGNAL"))

	for _, v := range []string{"", "0", "true", "yes", " 1"} {
		t.Setenv("HOSTCONFIG_TEST_SIGNAL", v)
		assert.False(t, New().IsSet("HOSTCONFIG_TEST_SIGNAL"), "value %q", v)
	}
}

func TestIsSetUnsetVariable(t *testing.T) {
	s := NewWithLookup(func(string) (string, bool) { return "", false })
	assert.False(t, s.IsSet("ANYTHING"))
	assert.False(t, s.IsSet(""))
}

func TestIsSetReadsEveryCall(t *testing.T) {
	value := "0"
	s := NewWithLookup(func(string) (string, bool) { return value, true })

	assert.False(t, s.IsSet("X"))
	value = "1"
	assert.True(t, s.IsSet("X"))
}
