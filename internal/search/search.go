// Package search provides the external resource search tools: Serper web
// search, Kaggle dataset search and GitHub repository search.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/casewright/casewright/internal/cache"
	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/worker"
)

// ErrNotConfigured indicates the tool's API credentials are missing. The
// agent layer treats this as "skip the tool", not as a failure.
var ErrNotConfigured = errors.New("search tool credentials not configured")

// client is the shared HTTP plumbing for all search tools: pacing, caching
// and bounded reads.
type client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

func newClient(cfg model.HTTPConfig, search model.SearchConfig, c cache.Cache, ttl time.Duration) *client {
	return &client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		limiter:    worker.NewLimiter(search.RatePerSecond, search.RateBurst),
		cache:      c,
		cacheTTL:   ttl,
	}
}

// doJSON executes the request, enforcing per-host pacing and the body size
// limit, and decodes the JSON response into out.
func (c *client) doJSON(ctx context.Context, req *http.Request, out interface{}) (int, error) {
	if err := c.limiter.Wait(ctx, req.URL.String()); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// cached runs fn unless a fresh cached payload exists for key
func (c *client) cached(key string, out interface{}, fn func() error) error {
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			if err := json.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if err := fn(); err != nil {
		return err
	}

	if c.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
