package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// LoadFile reads one settings file into the store. Values from the file
// replace values already present.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings %s: %w", path, err)
	}

	parsed, err := decode(filepath.Ext(path), data)
	if err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}

	count := 0
	for namespace, body := range parsed {
		section, ok := asMap(body)
		if !ok {
			s.logger.Warn("Skipping settings entry outside a namespace",
				zap.String("file", path),
				zap.String("entry", namespace),
			)
			continue
		}
		count += s.apply(path, namespace, "", section)
	}

	s.logger.Debug("Loaded settings file",
		zap.String("file", path),
		zap.Int("settings", count),
	)
	return nil
}

// LoadGlob loads every file matching pattern in lexical order, so later
// files override earlier ones. A pattern with no matches is not an error.
func (s *Store) LoadGlob(pattern string) (int, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	for _, match := range matches {
		if err := s.LoadFile(match); err != nil {
			return 0, err
		}
	}
	return len(matches), nil
}

func (s *Store) apply(path, namespace, prefix string, section map[string]interface{}) int {
	count := 0
	for name, value := range section {
		if prefix != "" {
			name = prefix + "." + name
		}

		if nested, ok := asMap(value); ok {
			count += s.apply(path, namespace, name, nested)
			continue
		}

		key := types.NewSettingKey(namespace, name)
		switch v := value.(type) {
		case bool, string:
			s.values.Store(key, v)
			count++
		case int64, uint64, float64, int:
			// Numeric values are kept in string form; boolean reads reject them
			s.values.Store(key, fmt.Sprint(v))
			count++
		default:
			s.logger.Warn("Skipping unsupported setting value",
				zap.String("file", path),
				zap.Stringer("key", key),
				zap.String("type", fmt.Sprintf("%T", value)),
			)
		}
	}
	return count
}

func decode(ext string, data []byte) (map[string]interface{}, error) {
	var parsed map[string]interface{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
	case ".json":
		if err := sonic.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, strconv.Quote(ext))
	}
	return parsed, nil
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
