package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/casewright/casewright/internal/cache"
	"github.com/casewright/casewright/internal/model"
)

const githubBaseURL = "https://api.github.com"

// GitHub searches GitHub for implementation-example repositories. A token
// is optional: on auth failure the search is retried unauthenticated at the
// lower anonymous rate limit.
type GitHub struct {
	*client
	token      string
	maxResults int
	baseURL    string
}

// NewGitHub creates a GitHub repository search tool
func NewGitHub(cfg *model.Config, c cache.Cache, ttl time.Duration) *GitHub {
	return &GitHub{
		client:     newClient(cfg.HTTP, cfg.Search, c, ttl),
		token:      cfg.Search.GitHubToken,
		maxResults: cfg.Search.MaxResults,
		baseURL:    githubBaseURL,
	}
}

type githubSearchResponse struct {
	Items []struct {
		FullName    string `json:"full_name"`
		HTMLURL     string `json:"html_url"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
		Language    string `json:"language"`
	} `json:"items"`
}

// Repositories searches GitHub for repositories matching the query,
// sorted by stars.
func (g *GitHub) Repositories(ctx context.Context, query string) ([]model.Repository, error) {
	var parsed githubSearchResponse
	err := g.cached(cache.SearchKey("github", query), &parsed, func() error {
		status, err := g.search(ctx, query, g.token, &parsed)
		if status == http.StatusUnauthorized && g.token != "" {
			// Bad token: fall back to anonymous search.
			_, err = g.search(ctx, query, "", &parsed)
		}
		if err != nil {
			return fmt.Errorf("github search: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	repos := make([]model.Repository, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		repos = append(repos, model.Repository{
			FullName:    item.FullName,
			URL:         item.HTMLURL,
			Description: item.Description,
			Stars:       item.Stars,
			Language:    item.Language,
		})
	}
	return repos, nil
}

func (g *GitHub) search(ctx context.Context, query, token string, out *githubSearchResponse) (int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(g.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search/repositories?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	return g.doJSON(ctx, req, out)
}

// FormatRepositories renders repository results for folding into an agent prompt
func FormatRepositories(query string, repos []model.Repository) string {
	if len(repos) == 0 {
		return fmt.Sprintf("No repositories found for query: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== GITHUB REPOSITORIES FOR: %q ===\n\n", query)
	for i, r := range repos {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, r.FullName)
		if r.Description != "" {
			fmt.Fprintf(&b, "   %s\n", r.Description)
		}
		fmt.Fprintf(&b, "   Stars: %d", r.Stars)
		if r.Language != "" {
			fmt.Fprintf(&b, " | Language: %s", r.Language)
		}
		fmt.Fprintf(&b, "\n   URL: %s\n\n", r.URL)
	}
	return b.String()
}
