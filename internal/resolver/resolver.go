package resolver

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/options"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// ModeResolver memoizes diagnostic mode decisions per setting key
type ModeResolver struct {
	source   options.Source
	signal   string
	pullFlag string
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	// mu guards cells only; evaluation runs outside it
	mu    sync.Mutex
	cells map[types.SettingKey]func() types.Mode
}

// NewModeResolver creates a resolver reading from source with the shared
// inputs described by opts
func NewModeResolver(source options.Source, opts options.DiagnosticOptions, logger *zap.Logger) *ModeResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModeResolver{
		source:   source,
		signal:   opts.RestrictedHostSignal,
		pullFlag: opts.PullFlag,
		logger:   logger.Named("mode-resolver"),
		cells:    make(map[types.SettingKey]func() types.Mode),
	}
}

// WithMetrics attaches a metrics collector
func (r *ModeResolver) WithMetrics(metrics *monitoring.Metrics) *ModeResolver {
	r.metrics = metrics
	return r
}

// GetMode returns the effective mode for key. The first call for a key reads
// the source and evaluates the policy; every later or concurrent call for the
// same key returns that result. A panic raised by the source while evaluating
// is re-raised to every caller of that key.
func (r *ModeResolver) GetMode(key types.SettingKey) types.Mode {
	r.metrics.RecordModeQuery(key.String())
	return r.cell(key)()
}

// Resolved returns the number of keys with a cache cell
func (r *ModeResolver) Resolved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}

func (r *ModeResolver) cell(key types.SettingKey) func() types.Mode {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cells[key]
	if !ok {
		c = sync.OnceValue(func() types.Mode {
			return r.evaluate(key)
		})
		r.cells[key] = c
		r.metrics.SetCachedModes(len(r.cells))
	}
	return c
}

func (r *ModeResolver) evaluate(key types.SettingKey) types.Mode {
	restricted := r.source.ReadEnvironmentSignal(r.signal)
	persisted := r.source.ReadPersistedMode(key)
	flag := r.source.ReadFeatureFlag(r.pullFlag)

	mode, reason := Decide(restricted, persisted, flag)

	r.logger.Debug("Resolved diagnostic mode",
		zap.Stringer("key", key),
		zap.Stringer("mode", mode),
		zap.String("reason", string(reason)),
	)
	r.metrics.RecordModeEvaluation(key.String(), mode.String(), string(reason))

	return mode
}
