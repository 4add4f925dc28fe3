package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsGate caches per-host robots.txt data and answers fetch-permission
// queries. Hosts whose robots.txt cannot be retrieved are treated as open.
type robotsGate struct {
	mu         sync.RWMutex
	perHost    map[string]*robotstxt.RobotsData
	httpClient *http.Client
	userAgent  string
}

func newRobotsGate(userAgent string, timeout time.Duration) *robotsGate {
	return &robotsGate{
		perHost: make(map[string]*robotstxt.RobotsData),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Allows reports whether the given URL may be fetched under the host's
// robots.txt rules.
func (g *robotsGate) Allows(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data, err := g.dataFor(ctx, parsed)
	if err != nil {
		return true
	}

	return data.TestAgent(parsed.Path, g.userAgent)
}

func (g *robotsGate) dataFor(ctx context.Context, parsed *url.URL) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, ok := g.perHost[parsed.Host]
	g.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.mu.Lock()
	g.perHost[parsed.Host] = data
	g.mu.Unlock()

	return data, nil
}
