package flags

import (
	"fmt"
	"os"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Snapshot is the wire and file form of a flag set
type Snapshot struct {
	Flags map[string]bool `json:"flags"`
}

// Service holds the current flag values
type Service struct {
	mu     sync.RWMutex
	flags  map[string]bool
	logger *zap.Logger
}

// NewService creates an empty flag service
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		flags:  make(map[string]bool),
		logger: logger,
	}
}

// Enabled reports whether the flag is on. Unknown flags are off.
func (s *Service) Enabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[name]
}

// Set records a single flag value
func (s *Service) Set(name string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[name] = enabled
}

// Merge records every flag in values, keeping flags not mentioned
func (s *Service) Merge(values map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, enabled := range values {
		s.flags[name] = enabled
	}
}

// Snapshot returns a copy of all known flags
func (s *Service) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.flags))
	for name, enabled := range s.flags {
		out[name] = enabled
	}
	return out
}

// LoadFile merges a JSON snapshot file into the service
func (s *Service) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read flags %s: %w", path, err)
	}

	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse flags %s: %w", path, err)
	}

	s.Merge(snap.Flags)
	s.logger.Debug("Loaded feature flags",
		zap.String("file", path),
		zap.Int("flags", len(snap.Flags)),
	)
	return nil
}
