// Package agent implements the sequential proposal workflow. Four agents run
// in order: research, use-case generation, resource collection, and proposal
// writing. Each agent folds the previous stages' output into its prompt.
package agent

import (
	"context"

	"github.com/casewright/casewright/internal/llm"
	"github.com/casewright/casewright/internal/model"
)

// Completer is the completion surface agents depend on
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

// WebSearcher finds web results for a query
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]model.SearchHit, error)
}

// DatasetSearcher finds datasets for a query
type DatasetSearcher interface {
	Datasets(ctx context.Context, query string) ([]model.Dataset, error)
}

// RepositorySearcher finds repositories for a query
type RepositorySearcher interface {
	Repositories(ctx context.Context, query string) ([]model.Repository, error)
}

// complete runs a completion with the configured model settings
func complete(ctx context.Context, c Completer, cfg *model.Config, system, prompt string) (string, error) {
	resp, err := c.Complete(ctx, llm.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
