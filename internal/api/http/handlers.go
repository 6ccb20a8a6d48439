package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/hostvariant"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/options"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

// ModeGetter resolves diagnostic modes
type ModeGetter interface {
	GetMode(key types.SettingKey) types.Mode
	Resolved() int
}

// HostResolver resolves the out-of-process host variant
type HostResolver interface {
	Resolve(opts options.HostOptions) hostvariant.Variant
}

// Handlers serves the read-only inspection API
type Handlers struct {
	modes   ModeGetter
	host    HostResolver
	schema  *options.Schema
	metrics *monitoring.Metrics
	started time.Time
}

// NewHandlers creates handlers
func NewHandlers(modes ModeGetter, host HostResolver, schema *options.Schema, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		modes:   modes,
		host:    host,
		schema:  schema,
		metrics: metrics,
		started: time.Now(),
	}
}

// Register attaches all routes to router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.GET("/schema", h.Schema)
	router.GET("/modes", h.ListModes)
	router.GET("/modes/:namespace/:name", h.GetMode)
	router.GET("/host", h.GetHost)
}

// Health reports service status
func (h *Handlers) Health(c *gin.Context) {
	h.metrics.UpdateUptime()
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"uptime":       time.Since(h.started).String(),
		"cached_modes": h.modes.Resolved(),
		"metrics":      h.metrics.Snapshot(),
	})
}

// Schema lists every known setting
func (h *Handlers) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings":               h.schema.Descriptors(),
		"restricted_host_signal": h.schema.Diagnostics.RestrictedHostSignal,
	})
}

// ListModes resolves every mode setting in the schema
func (h *Handlers) ListModes(c *gin.Context) {
	modes := make(map[string]types.Mode, len(h.schema.Diagnostics.Modes))
	for _, key := range h.schema.Diagnostics.Modes {
		modes[key.String()] = h.modes.GetMode(key)
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes})
}

// GetMode resolves one mode setting
func (h *Handlers) GetMode(c *gin.Context) {
	key := types.NewSettingKey(c.Param("namespace"), c.Param("name"))
	if !h.schema.HasMode(key) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "unknown mode setting: " + key.String(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":  key,
		"mode": h.modes.GetMode(key),
	})
}

// GetHost resolves the host variant
func (h *Handlers) GetHost(c *gin.Context) {
	v := h.host.Resolve(h.schema.Host)
	c.JSON(http.StatusOK, gin.H{
		"variant": v,
		"args":    v.Args(),
	})
}
