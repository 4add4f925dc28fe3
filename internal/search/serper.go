package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/casewright/casewright/internal/cache"
	"github.com/casewright/casewright/internal/model"
)

const serperURL = "https://google.serper.dev/search"

// WebSearch performs web searches via the Serper API
type WebSearch struct {
	*client
	apiKey     string
	maxResults int
	baseURL    string
}

// NewWebSearch creates a web search tool
func NewWebSearch(cfg *model.Config, c cache.Cache, ttl time.Duration) *WebSearch {
	return &WebSearch{
		client:     newClient(cfg.HTTP, cfg.Search, c, ttl),
		apiKey:     cfg.Search.SerperAPIKey,
		maxResults: cfg.Search.MaxResults,
		baseURL:    serperURL,
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search runs a web search and returns the organic results
func (w *WebSearch) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	if w.apiKey == "" {
		return nil, fmt.Errorf("serper: %w", ErrNotConfigured)
	}

	num := 10
	if w.maxResults > 0 {
		num = w.maxResults * 2
	}

	var parsed serperResponse
	err := w.cached(cache.SearchKey("serper", query), &parsed, func() error {
		payload, err := json.Marshal(serperRequest{Q: query, Num: num})
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("X-API-KEY", w.apiKey)
		req.Header.Set("Content-Type", "application/json")

		if _, err := w.doJSON(ctx, req, &parsed); err != nil {
			return fmt.Errorf("serper search: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	hits := make([]model.SearchHit, 0, len(parsed.Organic))
	for _, r := range parsed.Organic {
		hits = append(hits, model.SearchHit{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return hits, nil
}

// FormatHits renders search results for folding into an agent prompt
func FormatHits(query string, hits []model.SearchHit) string {
	if len(hits) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== WEB SEARCH RESULTS FOR: %q ===\n\n", query)
	for i, hit := range hits {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, hit.Title)
		fmt.Fprintf(&b, "   %s\n", hit.Link)
		if hit.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", hit.Snippet)
		}
		b.WriteString("\n")
	}
	return b.String()
}
