// Package hostvariant decides the shape of the out-of-process analysis host:
// bit width, garbage collector and runtime flavor.
//
// Each toggle is recomputed on every call. Server GC and CoreCLR are
// "persisted OR flag": a flag can force them on, never off. Width has no
// flag; it is persisted AND a 64-bit platform.
package hostvariant

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/options"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// Variant is a resolved host shape
type Variant struct {
	Use64Bit bool `json:"use_64bit"`
	ServerGC bool `json:"server_gc"`
	CoreCLR  bool `json:"coreclr"`
}

// Args renders the variant as host launch switches
func (v Variant) Args() []string {
	var args []string
	if v.Use64Bit {
		args = append(args, "--64bit")
	}
	if v.ServerGC {
		args = append(args, "--server-gc")
	}
	if v.CoreCLR {
		args = append(args, "--coreclr")
	}
	return args
}

// Policy composes host toggles. It holds no mutable state.
type Policy struct {
	source  options.Source
	is64Bit bool
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// Is64BitPlatform reports whether this process runs on a 64-bit platform
func Is64BitPlatform() bool {
	return strconv.IntSize == 64
}

// NewPolicy creates a policy. is64Bit is normally Is64BitPlatform().
func NewPolicy(source options.Source, is64Bit bool, logger *zap.Logger) *Policy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Policy{
		source:  source,
		is64Bit: is64Bit,
		logger:  logger.Named("host-variant"),
	}
}

// WithMetrics attaches a metrics collector
func (p *Policy) WithMetrics(metrics *monitoring.Metrics) *Policy {
	p.metrics = metrics
	return p
}

// ResolveWidthVariant reports whether to launch a 64-bit host. No feature
// flag applies: a flag cannot make a 32-bit platform run 64-bit code.
func (p *Policy) ResolveWidthVariant(key types.SettingKey) bool {
	v := p.is64Bit && p.source.ReadPersistedBool(key)
	p.metrics.RecordHostResolution("width", v)
	return v
}

// ResolveGCVariant reports whether to use the server garbage collector
func (p *Policy) ResolveGCVariant(toggle types.BoolToggle) bool {
	v := p.orFlag(toggle)
	p.metrics.RecordHostResolution("server_gc", v)
	return v
}

// ResolveRuntimeVariant reports whether to use the CoreCLR runtime flavor
func (p *Policy) ResolveRuntimeVariant(toggle types.BoolToggle) bool {
	v := p.orFlag(toggle)
	p.metrics.RecordHostResolution("coreclr", v)
	return v
}

// Resolve evaluates every toggle in opts
func (p *Policy) Resolve(opts options.HostOptions) Variant {
	v := Variant{
		Use64Bit: p.ResolveWidthVariant(opts.Width),
		ServerGC: p.ResolveGCVariant(opts.ServerGC),
		CoreCLR:  p.ResolveRuntimeVariant(opts.CoreCLR),
	}

	p.logger.Debug("Resolved host variant",
		zap.Bool("use_64bit", v.Use64Bit),
		zap.Bool("server_gc", v.ServerGC),
		zap.Bool("coreclr", v.CoreCLR),
	)
	return v
}

func (p *Policy) orFlag(toggle types.BoolToggle) bool {
	return p.source.ReadPersistedBool(toggle.Key) || p.source.ReadFeatureFlag(toggle.Flag)
}
