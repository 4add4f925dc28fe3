package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/search"
)

const researchSystem = `You are a Senior Market Research Analyst. You conduct comprehensive market research using the search results supplied to you, focusing on authoritative sources such as McKinsey, Deloitte, PwC, BCG, and company reports. Include specific data points, statistics, and quantitative insights with source citations.`

// Research conducts market research for a company and industry
type Research struct {
	llm Completer
	web WebSearcher
	cfg *model.Config
}

// NewResearch creates the research agent. A nil web searcher disables
// search grounding and the agent works from the model's own knowledge.
func NewResearch(c Completer, web WebSearcher, cfg *model.Config) *Research {
	return &Research{llm: c, web: web, cfg: cfg}
}

// queries returns the search queries issued before drafting the report
func (a *Research) queries(company, industry string) []string {
	return []string{
		fmt.Sprintf("%s AI adoption trends 2025", industry),
		fmt.Sprintf("%s annual report AI strategy", company),
		fmt.Sprintf("%s market research McKinsey Deloitte", industry),
		fmt.Sprintf("%s competitive analysis technology sector", company),
	}
}

// Run gathers search context and produces a market research report
func (a *Research) Run(ctx context.Context, company, industry string) (string, error) {
	var grounding strings.Builder
	if a.web != nil {
		for _, q := range a.queries(company, industry) {
			hits, err := a.web.Search(ctx, q)
			if err != nil {
				if errors.Is(err, search.ErrNotConfigured) {
					break
				}
				// Partial search coverage is acceptable; the model fills gaps.
				continue
			}
			grounding.WriteString(search.FormatHits(q, hits))
			grounding.WriteString("\n")
		}
	}

	prompt := fmt.Sprintf(`Conduct comprehensive market research for %s in the %s sector.

COMPANY: %s
INDUSTRY: %s

OUTPUT FORMAT:
Provide a comprehensive research report with:
- Executive Summary (2-3 paragraphs)
- Industry analysis and trends
- Competitive landscape
- Market opportunities
- Strategic recommendations
`, company, industry, company, industry)

	if grounding.Len() > 0 {
		prompt += fmt.Sprintf("\nSEARCH RESULTS:\n%s", grounding.String())
	}

	return complete(ctx, a.llm, a.cfg, researchSystem, prompt)
}
