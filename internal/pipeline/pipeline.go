// Package pipeline orchestrates the proposal workflow end to end, from input
// validation through the agent stages to rendered reports.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/casewright/casewright/internal/agent"
	"github.com/casewright/casewright/internal/cache"
	"github.com/casewright/casewright/internal/llm"
	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/resource"
	"github.com/casewright/casewright/internal/search"
)

// Pipeline orchestrates the complete proposal generation process
type Pipeline struct {
	research  *agent.Research
	useCases  *agent.UseCase
	resources *agent.Resource
	proposal  *agent.Proposal
	checker   *resource.Checker
	renderer  *Renderer
	config    *model.Config

	providerName string
}

// NewPipeline creates a fully wired pipeline from the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	client := llm.NewClient(provider, store, cfg.Cache.DiskTTL)
	web := search.NewWebSearch(cfg, store, cfg.Cache.DiskTTL)
	kaggle := search.NewKaggle(cfg, store, cfg.Cache.DiskTTL)
	github := search.NewGitHub(cfg, store, cfg.Cache.DiskTTL)

	p := newPipeline(cfg, client, web, kaggle, github)
	p.providerName = provider.Name()
	return p, nil
}

// newPipeline assembles the pipeline from its collaborators
func newPipeline(cfg *model.Config, c agent.Completer, web agent.WebSearcher, kaggle agent.DatasetSearcher, github agent.RepositorySearcher) *Pipeline {
	return &Pipeline{
		research:  agent.NewResearch(c, web, cfg),
		useCases:  agent.NewUseCase(c, cfg),
		resources: agent.NewResource(c, kaggle, github, cfg),
		proposal:  agent.NewProposal(c, cfg),
		checker:   resource.NewChecker(cfg),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}
}

// Generate runs the four agent stages in order and verifies collected links
func (p *Pipeline) Generate(ctx context.Context, company, industry string) (*model.Proposal, error) {
	if err := ValidateCompany(company); err != nil {
		return nil, err
	}
	industry, err := NormalizeIndustry(industry)
	if err != nil {
		return nil, err
	}

	verbose := p.config.Output.Verbose

	// 1. Market research
	if verbose {
		fmt.Printf("Research agent: starting market research for %s (%s)\n", company, industry)
	}
	research, err := p.research.Run(ctx, company, industry)
	if err != nil {
		return nil, fmt.Errorf("research: %w", err)
	}

	// 2. Use cases, regenerated until the quotas hold or the budget runs out
	if verbose {
		fmt.Println("Use case agent: generating AI use cases")
	}
	useCases, err := p.useCases.Run(ctx, company, industry, research)
	if err != nil {
		return nil, fmt.Errorf("use cases: %w", err)
	}
	status := "success"
	if !useCases.Validation.Valid {
		status = "accepted_with_warnings"
		fmt.Printf("Warning: use cases accepted after %d attempts with outstanding issues:\n", useCases.Attempts)
		for _, issue := range useCases.Validation.Issues() {
			fmt.Printf("  - %s\n", issue)
		}
	} else if verbose {
		fmt.Printf("Use case agent: portfolio validated in %d attempt(s)\n", useCases.Attempts)
	}

	// 3. Implementation resources
	if verbose {
		fmt.Println("Resource agent: collecting datasets and repositories")
	}
	resources, err := p.resources.Run(ctx, company, industry, research, useCases.Text)
	if err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}

	// 4. Final proposal
	if verbose {
		fmt.Println("Proposal agent: writing final proposal")
	}
	final, err := p.proposal.Run(ctx, company, industry, research, useCases.Text, resources.Text)
	if err != nil {
		return nil, fmt.Errorf("proposal: %w", err)
	}

	// 5. Verify collected links before citing them
	links := make([]string, 0, len(resources.Datasets)+len(resources.Repositories))
	for _, d := range resources.Datasets {
		links = append(links, d.URL)
	}
	for _, r := range resources.Repositories {
		links = append(links, r.URL)
	}
	if verbose && len(links) > 0 {
		fmt.Printf("Link checker: verifying %d resource links\n", len(links))
	}
	checks := p.checker.CheckAll(ctx, links)

	return &model.Proposal{
		Company:      company,
		Industry:     industry,
		GeneratedAt:  time.Now().UTC(),
		Status:       status,
		Research:     research,
		UseCases:     useCases.Text,
		Resources:    resources.Text,
		Final:        final,
		Validation:   useCases.Validation,
		Attempts:     useCases.Attempts,
		Datasets:     resources.Datasets,
		Repositories: resources.Repositories,
		LinkChecks:   checks,
		LLMProvider:  p.providerName,
		LLMModel:     p.config.LLM.Model,
	}, nil
}

// RenderProposal writes the proposal to its JSON and Markdown outputs
func (p *Pipeline) RenderProposal(proposal *model.Proposal, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(proposal, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(proposal, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(proposal)

	return nil
}
