package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/AgentOS/hostconfig/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/environment"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/flags"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/hostvariant"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/options"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/resolver"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/settings"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

var (
	ErrUnknownSetting = errors.New("not a diagnostic mode setting")
)

// Deps overrides collaborators, mainly for tests. Zero values select the
// production defaults.
type Deps struct {
	Logger  *logging.Logger
	Lookup  environment.Lookup
	Is64Bit *bool
}

// Server is the composition root: it owns the collaborators, both resolvers
// and the inspection API
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	metrics  *monitoring.Metrics
	schema   *options.Schema
	settings *settings.Store
	flags    *flags.Service
	modes    *resolver.ModeResolver
	host     *hostvariant.Policy
	router   *gin.Engine
	http     *http.Server
}

// Report is a one-shot view of every resolved option
type Report struct {
	Modes map[string]types.Mode `json:"modes"`
	Host  hostvariant.Variant   `json:"host"`
	Args  []string              `json:"args"`
}

// New builds a server. Settings and flag files are loaded here; a remote
// flag fetch failure is logged and startup continues with local flags.
func New(ctx context.Context, cfg *config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		var err error
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		logCfg.Development = cfg.Logging.Development
		logger, err = logging.New(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	schema := options.DefaultSchema().WithRestrictedHostSignal(cfg.Host.RestrictedSignal)

	store, err := loadSettings(cfg.Settings, schema, logger.Logger)
	if err != nil {
		return nil, err
	}
	metrics.SetSettingsKeys(store.Len())

	flagService, err := loadFlags(ctx, cfg.Flags, metrics, logger.Logger)
	if err != nil {
		return nil, err
	}

	signal := environment.New()
	if deps.Lookup != nil {
		signal = environment.NewWithLookup(deps.Lookup)
	}

	is64Bit := hostvariant.Is64BitPlatform()
	if deps.Is64Bit != nil {
		is64Bit = *deps.Is64Bit
	}

	source := options.NewComposite(store, flagService, signal)
	modes := resolver.NewModeResolver(source, schema.Diagnostics, logger.Logger).WithMetrics(metrics)
	host := hostvariant.NewPolicy(source, is64Bit, logger.Logger).WithMetrics(metrics)

	s := &Server{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  metrics,
		schema:   schema,
		settings: store,
		flags:    flagService,
		modes:    modes,
		host:     host,
	}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Host configuration initialized",
		zap.Int("settings", store.Len()),
		zap.Int("flags", len(flagService.Snapshot())),
		zap.String("restricted_host_signal", schema.Diagnostics.RestrictedHostSignal),
		zap.Bool("platform_64bit", is64Bit),
	)

	return s, nil
}

func loadSettings(cfg config.SettingsConfig, schema *options.Schema, logger *zap.Logger) (*settings.Store, error) {
	store := settings.NewStore(logger)

	if cfg.Glob != "" {
		n, err := store.LoadGlob(cfg.Glob)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		logger.Info("Loaded settings files", zap.String("glob", cfg.Glob), zap.Int("files", n))
	}

	// The explicit file is applied last so it overrides the glob
	if cfg.File != "" {
		if err := store.LoadFile(cfg.File); err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
	}

	if err := store.ValidateModes(schema.Diagnostics.Modes); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return store, nil
}

func loadFlags(ctx context.Context, cfg config.FlagsConfig, metrics *monitoring.Metrics, logger *zap.Logger) (*flags.Service, error) {
	service := flags.NewService(logger)

	if cfg.File != "" {
		if err := service.LoadFile(cfg.File); err != nil {
			return nil, fmt.Errorf("failed to load feature flags: %w", err)
		}
	}

	if cfg.URL != "" {
		fetchCfg := flags.DefaultFetchConfig(cfg.URL)
		if cfg.Timeout > 0 {
			fetchCfg.Timeout = cfg.Timeout
		}
		if cfg.Retries >= 0 {
			fetchCfg.Retries = cfg.Retries
		}
		fetcher := flags.NewFetcher(fetchCfg)
		if err := service.Refresh(ctx, fetcher); err != nil {
			metrics.RecordFlagRefresh("error")
		} else {
			metrics.RecordFlagRefresh("success")
		}
	}

	return service, nil
}

func (s *Server) buildRouter() *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = s.config.RateLimit.RequestsPerSecond
		rl.Burst = s.config.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	api.NewHandlers(s.modes, s.host, s.schema, s.metrics).Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return router
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Modes returns the diagnostic mode resolver
func (s *Server) Modes() *resolver.ModeResolver {
	return s.modes
}

// Host returns the host variant policy
func (s *Server) Host() *hostvariant.Policy {
	return s.host
}

// Schema returns the option schema in use
func (s *Server) Schema() *options.Schema {
	return s.schema
}

// Report resolves every option in the schema
func (s *Server) Report() Report {
	modes := make(map[string]types.Mode, len(s.schema.Diagnostics.Modes))
	for _, key := range s.schema.Diagnostics.Modes {
		modes[key.String()] = s.modes.GetMode(key)
	}

	variant := s.host.Resolve(s.schema.Host)
	return Report{
		Modes: modes,
		Host:  variant,
		Args:  variant.Args(),
	}
}

// ModeFor resolves one diagnostic mode given in "namespace.name" form
func (s *Server) ModeFor(name string) (types.Mode, error) {
	key, err := types.ParseSettingKey(name)
	if err != nil {
		return types.ModeDefault, err
	}
	if !s.schema.HasMode(key) {
		return types.ModeDefault, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return s.modes.GetMode(key), nil
}

// Run serves the inspection API until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting inspection server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.logger.Sync()

	return s.http.Shutdown(ctx)
}
