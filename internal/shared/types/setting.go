package types

import (
	"fmt"
	"strings"
)

// SettingKey identifies a logical setting. Keys compare by value and are
// safe to use as map keys.
type SettingKey struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// NewSettingKey creates a setting key
func NewSettingKey(namespace, name string) SettingKey {
	return SettingKey{Namespace: namespace, Name: name}
}

// ParseSettingKey parses the "namespace.name" form produced by String.
// The name may itself contain dots; only the first one separates.
func ParseSettingKey(s string) (SettingKey, error) {
	namespace, name, ok := strings.Cut(s, ".")
	if !ok || namespace == "" || name == "" {
		return SettingKey{}, fmt.Errorf("invalid setting key %q: expected namespace.name", s)
	}
	return SettingKey{Namespace: namespace, Name: name}, nil
}

// String returns "namespace.name"
func (k SettingKey) String() string {
	return k.Namespace + "." + k.Name
}

// BoolToggle is a boolean setting with an independently named feature flag
// that can force it on. An empty Flag means the toggle has no flag.
type BoolToggle struct {
	Key  SettingKey `json:"key"`
	Flag string     `json:"flag,omitempty"`
}
