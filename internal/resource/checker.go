// Package resource verifies that dataset and repository links collected for a
// proposal are alive before they are cited in the final report.
package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/casewright/casewright/internal/model"
)

const checkMaxRetries = 3

// titleProbeLimit caps how much of a page body is read when extracting the title
const titleProbeLimit = 256 * 1024

// checkSleepFunc is the sleep function used between retries (injectable for tests)
var checkSleepFunc = time.Sleep

// Checker validates resource links concurrently
type Checker struct {
	httpClient *http.Client
	maxWorkers int
	userAgent  string
	robots     *robotsGate
}

// NewChecker creates a link checker from the HTTP and concurrency settings
func NewChecker(cfg *model.Config) *Checker {
	workers := cfg.Concurrency.LinkCheckWorkers
	if workers <= 0 {
		workers = 10
	}

	return &Checker{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: workers,
		userAgent:  cfg.HTTP.UserAgent,
		robots:     newRobotsGate(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
	}
}

// CheckAll validates all links concurrently, preserving input order
func (c *Checker) CheckAll(ctx context.Context, urls []string) []model.LinkCheck {
	if len(urls) == 0 {
		return []model.LinkCheck{}
	}

	results := make([]model.LinkCheck, len(urls))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, c.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, link string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.LinkCheck{
					URL:   link,
					Error: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = c.checkSingleWithRetry(ctx, link)
		}(i, u)
	}

	wg.Wait()

	return results
}

// checkSingle performs one HEAD probe and, for accessible HTML pages, pulls the title
func (c *Checker) checkSingle(ctx context.Context, link string) model.LinkCheck {
	result := model.LinkCheck{URL: link}

	if !c.robots.Allows(ctx, link) {
		result.Error = "disallowed by robots.txt"
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	// Some hosts reject HEAD outright. Treat that as a cue to probe with GET.
	if resp.StatusCode == http.StatusMethodNotAllowed {
		return c.probeWithGet(ctx, link, result)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	}

	if resp.Request.URL.String() != link {
		result.RedirectURL = resp.Request.URL.String()
	}

	if result.IsAccessible && strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		if title := c.fetchTitle(ctx, link); title != "" {
			result.PageTitle = title
		}
	}

	return result
}

// probeWithGet re-checks a link whose host refused the HEAD method
func (c *Checker) probeWithGet(ctx context.Context, link string, result model.LinkCheck) model.LinkCheck {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	}
	if resp.Request.URL.String() != link {
		result.RedirectURL = resp.Request.URL.String()
	}
	if result.IsAccessible && strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		result.PageTitle = extractTitle(io.LimitReader(resp.Body, titleProbeLimit))
	}

	return result
}

// fetchTitle retrieves a page and extracts its <title> element
func (c *Checker) fetchTitle(ctx context.Context, link string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	return extractTitle(io.LimitReader(resp.Body, titleProbeLimit))
}

// extractTitle tokenizes HTML until the first <title> text node
func extractTitle(r io.Reader) string {
	tokenizer := html.NewTokenizer(r)
	inTitle := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

// checkSingleWithRetry retries transient failures with exponential backoff
func (c *Checker) checkSingleWithRetry(ctx context.Context, link string) model.LinkCheck {
	var result model.LinkCheck
	for attempt := 0; attempt < checkMaxRetries; attempt++ {
		result = c.checkSingle(ctx, link)
		if !isRetryableCheck(result) {
			return result
		}
		if attempt < checkMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			checkSleepFunc(backoff)
		}
	}
	return result
}

// isRetryableCheck returns true for results that indicate transient failures
func isRetryableCheck(result model.LinkCheck) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == 429 {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}
