package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/hostvariant"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/options"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/shared/types"
)

type stubModes struct {
	modes map[types.SettingKey]types.Mode
	calls int
}

func (s *stubModes) GetMode(key types.SettingKey) types.Mode {
	s.calls++
	return s.modes[key]
}

func (s *stubModes) Resolved() int { return len(s.modes) }

type stubHost struct {
	variant hostvariant.Variant
}

func (s stubHost) Resolve(options.HostOptions) hostvariant.Variant { return s.variant }

func setup(t *testing.T) (*gin.Engine, *stubModes) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schema := options.DefaultSchema()
	modes := &stubModes{modes: map[types.SettingKey]types.Mode{
		schema.Diagnostics.Modes[0]: types.ModePull,
	}}
	host := stubHost{variant: hostvariant.Variant{Use64Bit: true, CoreCLR: true}}

	router := gin.New()
	NewHandlers(modes, host, schema, monitoring.NewMetrics(prometheus.NewRegistry())).Register(router)
	return router, modes
}

func get(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetMode(t *testing.T) {
	router, _ := setup(t)

	code, body := get(t, router, "/modes/diagnostics/mode")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pull", body["mode"])

	key := body["key"].(map[string]interface{})
	assert.Equal(t, "diagnostics", key["namespace"])
	assert.Equal(t, "mode", key["name"])
}

func TestGetModeUnknownKey(t *testing.T) {
	router, modes := setup(t)

	code, body := get(t, router, "/modes/diagnostics/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body["error"], "diagnostics.nope")
	assert.Equal(t, 0, modes.calls, "unknown keys must not create cache entries")
}

func TestListModes(t *testing.T) {
	router, _ := setup(t)

	code, body := get(t, router, "/modes")
	assert.Equal(t, http.StatusOK, code)

	modes := body["modes"].(map[string]interface{})
	assert.Equal(t, "pull", modes["diagnostics.mode"])
	assert.Equal(t, "default", modes["diagnostics.razor_mode"])
}

func TestGetHost(t *testing.T) {
	router, _ := setup(t)

	code, body := get(t, router, "/host")
	assert.Equal(t, http.StatusOK, code)

	variant := body["variant"].(map[string]interface{})
	assert.Equal(t, true, variant["use_64bit"])
	assert.Equal(t, false, variant["server_gc"])
	assert.Equal(t, []interface{}{"--64bit", "--coreclr"}, body["args"])
}

func TestSchemaAndHealth(t *testing.T) {
	router, _ := setup(t)

	code, body := get(t, router, "/schema")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, options.DefaultRestrictedHostSignal, body["restricted_host_signal"])
	assert.Len(t, body["settings"], 6)

	code, body = get(t, router, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(1), body["cached_modes"])
}
