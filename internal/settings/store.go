package settings

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported settings format")
)

// Store is an in-memory persisted-settings store
type Store struct {
	values sync.Map // types.SettingKey -> any
	logger *zap.Logger
}

// NewStore creates an empty store
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Set stores a raw value. Accepted values are bool, string and types.Mode.
func (s *Store) Set(key types.SettingKey, value any) error {
	switch v := value.(type) {
	case types.Mode:
		if !v.Valid() {
			return fmt.Errorf("setting %s: invalid diagnostic mode %s", key, v)
		}
		s.values.Store(key, v)
		return nil
	case bool, string:
		s.values.Store(key, value)
		return nil
	default:
		return fmt.Errorf("setting %s: unsupported value type %T", key, value)
	}
}

// Delete forgets a setting
func (s *Store) Delete(key types.SettingKey) {
	s.values.Delete(key)
}

// Get returns the raw stored value
func (s *Store) Get(key types.SettingKey) (any, bool) {
	return s.values.Load(key)
}

// ReadPersistedMode returns the stored mode, or ModeDefault if the key was
// never configured or holds something that is not a mode.
func (s *Store) ReadPersistedMode(key types.SettingKey) types.Mode {
	raw, ok := s.values.Load(key)
	if !ok {
		return types.ModeDefault
	}

	switch v := raw.(type) {
	case types.Mode:
		if !v.Valid() {
			return types.ModeDefault
		}
		return v
	case string:
		mode, err := types.ParseMode(v)
		if err != nil {
			s.logger.Warn("Ignoring invalid persisted mode",
				zap.Stringer("key", key),
				zap.String("value", v),
			)
			return types.ModeDefault
		}
		return mode
	default:
		return types.ModeDefault
	}
}

// ReadPersistedBool returns the stored boolean, or false if never configured
func (s *Store) ReadPersistedBool(key types.SettingKey) bool {
	raw, ok := s.values.Load(key)
	if !ok {
		return false
	}

	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

// ValidateModes checks that every configured key in keys holds a parseable
// mode. It is called once after loading so bad files fail at startup.
func (s *Store) ValidateModes(keys []types.SettingKey) error {
	var errs []error
	for _, key := range keys {
		raw, ok := s.values.Load(key)
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case types.Mode:
			if !v.Valid() {
				errs = append(errs, fmt.Errorf("setting %s: invalid diagnostic mode %s", key, v))
			}
		case string:
			if _, err := types.ParseMode(v); err != nil {
				errs = append(errs, fmt.Errorf("setting %s: %w", key, err))
			}
		default:
			errs = append(errs, fmt.Errorf("setting %s: expected a mode name, got %T", key, raw))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of stored settings
func (s *Store) Len() int {
	n := 0
	s.values.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
