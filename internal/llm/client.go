package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/casewright/casewright/internal/cache"
)

const completeMaxRetries = 3

// completeSleepFunc is the sleep function used between retries (injectable for tests)
var completeSleepFunc = time.Sleep

// Client wraps a provider with completion caching and transient-failure
// retry. Identical prompts against the same provider/model hit the cache
// instead of the network.
type Client struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
}

// NewClient creates a client around the given provider. A nil cache
// disables caching.
func NewClient(provider Provider, c cache.Cache, ttl time.Duration) *Client {
	return &Client{provider: provider, cache: c, ttl: ttl}
}

// Provider exposes the wrapped provider
func (c *Client) Provider() Provider {
	return c.provider
}

// Complete runs a completion with retry and caching
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	key := cache.CompletionKey(c.provider.Name(), req.Model, req.System+"\x00"+req.Prompt)

	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var resp CompletionResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := c.completeWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = c.cache.Set(key, data, c.ttl)
		}
	}

	return resp, nil
}

// completeWithRetry retries transient failures with exponential backoff
func (c *Client) completeWithRetry(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	var resp *CompletionResponse
	var err error
	for attempt := 0; attempt < completeMaxRetries; attempt++ {
		resp, err = c.provider.Complete(ctx, req)
		if err == nil || !isRetryableCompletionError(err) {
			return resp, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < completeMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			completeSleepFunc(backoff)
		}
	}
	return resp, err
}

// isRetryableCompletionError returns true for errors that indicate transient failures
func isRetryableCompletionError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "status code: 5") ||
		strings.Contains(s, "error (5")
}
