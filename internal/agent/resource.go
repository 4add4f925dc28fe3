package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/search"
)

const resourceSystem = `You are an AI/ML Resource Collection Specialist. You curate datasets and repositories for AI implementation projects, providing quality assessments and clickable links for every resource.`

// Resource collects datasets and repositories supporting the use cases
type Resource struct {
	llm    Completer
	kaggle DatasetSearcher
	github RepositorySearcher
	cfg    *model.Config
}

// ResourceOutcome carries the narrative plus the raw collected resources
type ResourceOutcome struct {
	Text         string
	Datasets     []model.Dataset
	Repositories []model.Repository
}

// NewResource creates the resource agent. Nil searchers are skipped.
func NewResource(c Completer, kaggle DatasetSearcher, github RepositorySearcher, cfg *model.Config) *Resource {
	return &Resource{llm: c, kaggle: kaggle, github: github, cfg: cfg}
}

// Run searches Kaggle and GitHub for industry-relevant resources and asks the
// model to assess them
func (a *Resource) Run(ctx context.Context, company, industry, research, useCases string) (*ResourceOutcome, error) {
	outcome := &ResourceOutcome{}
	var grounding strings.Builder

	queries := []string{
		industry,
		fmt.Sprintf("%s machine learning", industry),
	}

	if a.kaggle != nil {
		for _, q := range queries {
			datasets, err := a.kaggle.Datasets(ctx, q)
			if err != nil {
				if errors.Is(err, search.ErrNotConfigured) {
					break
				}
				continue
			}
			outcome.Datasets = append(outcome.Datasets, datasets...)
			grounding.WriteString(search.FormatDatasets(q, datasets))
			grounding.WriteString("\n")
		}
	}

	if a.github != nil {
		for _, q := range queries {
			repos, err := a.github.Repositories(ctx, q)
			if err != nil {
				if errors.Is(err, search.ErrNotConfigured) {
					break
				}
				continue
			}
			outcome.Repositories = append(outcome.Repositories, repos...)
			grounding.WriteString(search.FormatRepositories(q, repos))
			grounding.WriteString("\n")
		}
	}

	prompt := fmt.Sprintf(`Collect relevant datasets and GitHub repositories for %s in the %s industry.

COMPANY: %s
INDUSTRY: %s

RESEARCH FINDINGS:
%s

USE CASES:
%s

REQUIREMENTS:
1. Focus on %s-specific and %s-relevant resources
2. Include at least 3-5 Kaggle datasets with clickable links
3. Include at least 3-5 GitHub repositories with clickable links
4. Provide quality assessments for each resource

OUTPUT FORMAT:
- Executive Summary
- Datasets with direct links and quality assessments
- GitHub repositories with direct links and quality assessments
- Implementation recommendations
`, company, industry, company, industry, research, useCases, industry, company)

	if grounding.Len() > 0 {
		prompt += fmt.Sprintf("\nSEARCH RESULTS:\n%s", grounding.String())
	}

	text, err := complete(ctx, a.llm, a.cfg, resourceSystem, prompt)
	if err != nil {
		return nil, fmt.Errorf("resource collection: %w", err)
	}
	outcome.Text = text

	return outcome, nil
}
