package search

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/casewright/casewright/internal/cache"
	"github.com/casewright/casewright/internal/model"
)

const kaggleBaseURL = "https://www.kaggle.com/api/v1"

// Kaggle searches Kaggle for relevant datasets
type Kaggle struct {
	*client
	username   string
	apiKey     string
	maxResults int
	baseURL    string
}

// NewKaggle creates a Kaggle dataset search tool
func NewKaggle(cfg *model.Config, c cache.Cache, ttl time.Duration) *Kaggle {
	return &Kaggle{
		client:     newClient(cfg.HTTP, cfg.Search, c, ttl),
		username:   cfg.Search.KaggleUsername,
		apiKey:     cfg.Search.KaggleKey,
		maxResults: cfg.Search.MaxResults,
		baseURL:    kaggleBaseURL,
	}
}

type kaggleDataset struct {
	Title         string   `json:"title"`
	Ref           string   `json:"ref"`
	OwnerName     string   `json:"ownerName"`
	Size          string   `json:"size"`
	DownloadCount int      `json:"downloadCount"`
	Tags          []string `json:"tags"`
}

// Datasets searches Kaggle for datasets matching the query
func (k *Kaggle) Datasets(ctx context.Context, query string) ([]model.Dataset, error) {
	if k.username == "" || k.apiKey == "" {
		return nil, fmt.Errorf("kaggle: %w", ErrNotConfigured)
	}

	var parsed []kaggleDataset
	err := k.cached(cache.SearchKey("kaggle", query), &parsed, func() error {
		params := url.Values{}
		params.Set("search", query)
		params.Set("pageSize", strconv.Itoa(k.maxResults))
		params.Set("sortBy", "relevance")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+"/datasets/list?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		credentials := base64.StdEncoding.EncodeToString([]byte(k.username + ":" + k.apiKey))
		req.Header.Set("Authorization", "Basic "+credentials)

		if _, err := k.doJSON(ctx, req, &parsed); err != nil {
			return fmt.Errorf("kaggle search: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	datasets := make([]model.Dataset, 0, len(parsed))
	for _, d := range parsed {
		ref := d.Ref
		if ref == "" {
			ref = d.OwnerName
		}
		datasets = append(datasets, model.Dataset{
			Title:     d.Title,
			Owner:     d.OwnerName,
			URL:       "https://www.kaggle.com/datasets/" + ref,
			Size:      d.Size,
			Downloads: d.DownloadCount,
			Tags:      d.Tags,
		})
	}
	return datasets, nil
}

// FormatDatasets renders dataset results for folding into an agent prompt
func FormatDatasets(query string, datasets []model.Dataset) string {
	if len(datasets) == 0 {
		return fmt.Sprintf("No datasets found for query: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== KAGGLE DATASETS FOR: %q ===\n\n", query)
	for i, d := range datasets {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, d.Title)
		if d.Owner != "" {
			fmt.Fprintf(&b, "   Owner: %s\n", d.Owner)
		}
		if d.Size != "" {
			fmt.Fprintf(&b, "   Size: %s\n", d.Size)
		}
		fmt.Fprintf(&b, "   Downloads: %d\n", d.Downloads)
		if len(d.Tags) > 0 {
			tags := d.Tags
			if len(tags) > 5 {
				tags = tags[:5]
			}
			fmt.Fprintf(&b, "   Tags: %s\n", strings.Join(tags, ", "))
		}
		fmt.Fprintf(&b, "   URL: %s\n\n", d.URL)
	}
	return b.String()
}
