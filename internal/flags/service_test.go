package flags

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDefaults(t *testing.T) {
	s := NewService(nil)
	assert.False(t, s.Enabled("Lsp.PullDiagnostics"))
	assert.Empty(t, s.Snapshot())
}

func TestServiceSetAndMerge(t *testing.T) {
	s := NewService(nil)
	s.Set("a", true)
	s.Merge(map[string]bool{"b": true, "c": false})

	assert.True(t, s.Enabled("a"))
	assert.True(t, s.Enabled("b"))
	assert.False(t, s.Enabled("c"))

	snap := s.Snapshot()
	snap["a"] = false
	assert.True(t, s.Enabled("a"), "snapshot must be a copy")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"flags": {"Lsp.PullDiagnostics": true}}`), 0o644))

	s := NewService(nil)
	require.NoError(t, s.LoadFile(path))
	assert.True(t, s.Enabled("Lsp.PullDiagnostics"))

	assert.Error(t, s.LoadFile(filepath.Join(t.TempDir(), "missing.json")))
}

func TestRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"flags": {"Host.ServerGC": true, "Host.CoreCLR": false}}`))
	}))
	defer srv.Close()

	s := NewService(nil)
	s.Set("Local.Only", true)

	f := NewFetcher(FetchConfig{URL: srv.URL, Timeout: time.Second})
	require.NoError(t, s.Refresh(context.Background(), f))

	assert.True(t, s.Enabled("Host.ServerGC"))
	assert.False(t, s.Enabled("Host.CoreCLR"))
	assert.True(t, s.Enabled("Local.Only"))
}

func TestRefreshErrorKeepsValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewService(nil)
	s.Set("Host.ServerGC", true)

	f := NewFetcher(FetchConfig{URL: srv.URL, Timeout: time.Second})
	err := s.Refresh(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.True(t, s.Enabled("Host.ServerGC"))
}

func TestFetchBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewFetcher(FetchConfig{URL: srv.URL, Timeout: time.Second}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"flags": {"Lsp.PullDiagnostics": true}}`))
	}))
	defer srv.Close()

	values, err := NewFetcher(FetchConfig{URL: srv.URL, Timeout: time.Second, Retries: 2}).Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, values["Lsp.PullDiagnostics"])
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFetcher(FetchConfig{URL: srv.URL, Timeout: time.Second, Retries: 2}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, int32(3), hits.Load())
}
