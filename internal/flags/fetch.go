package flags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

var (
	ErrFetchFailed = errors.New("feature flag fetch failed")
)

// FetchConfig configures the remote flag endpoint
type FetchConfig struct {
	URL     string
	Timeout time.Duration
	Retries int
}

// DefaultFetchConfig returns fetch settings suitable for startup
func DefaultFetchConfig(url string) FetchConfig {
	return FetchConfig{
		URL:     url,
		Timeout: 5 * time.Second,
		Retries: 2,
	}
}

// Fetcher downloads flag snapshots from a remote endpoint
type Fetcher struct {
	client *resty.Client
	url    string
}

// NewFetcher creates a fetcher. Retries covers connection errors and 5xx
// responses; Timeout bounds each attempt.
func NewFetcher(cfg FetchConfig) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "AgentOS-HostConfig/1.0")

	return &Fetcher{client: client, url: cfg.URL}
}

// Fetch downloads the current flag values
func (f *Fetcher) Fetch(ctx context.Context) (map[string]bool, error) {
	resp, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, f.url, resp.Status())
	}

	var snap Snapshot
	if err := sonic.Unmarshal(resp.Body(), &snap); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetchFailed, err)
	}
	return snap.Flags, nil
}

// Refresh fetches remote flags and merges them into the service. On failure
// the service keeps its current values.
func (s *Service) Refresh(ctx context.Context, f *Fetcher) error {
	values, err := f.Fetch(ctx)
	if err != nil {
		s.logger.Warn("Feature flag refresh failed", zap.Error(err))
		return err
	}

	s.Merge(values)
	s.logger.Info("Feature flags refreshed", zap.Int("flags", len(values)))
	return nil
}
