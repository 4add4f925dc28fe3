package agent

import (
	"context"
	"fmt"

	"github.com/casewright/casewright/internal/model"
)

const proposalSystem = `You are a Senior Business Strategy Consultant and Proposal Writer. You create comprehensive, professionally structured business proposals.`

// Proposal writes the final business proposal from the earlier stages
type Proposal struct {
	llm Completer
	cfg *model.Config
}

// NewProposal creates the proposal agent
func NewProposal(c Completer, cfg *model.Config) *Proposal {
	return &Proposal{llm: c, cfg: cfg}
}

// Run consolidates research, use cases and resources into the final proposal
func (a *Proposal) Run(ctx context.Context, company, industry, research, useCases, resources string) (string, error) {
	prompt := fmt.Sprintf(`Create a comprehensive business proposal for %s in the %s industry.

COMPANY: %s
INDUSTRY: %s

RESEARCH FINDINGS:
%s

USE CASES:
%s

RESOURCES:
%s

PROPOSAL REQUIREMENTS:
1. Executive Summary
2. Business Case
3. AI Use Cases (MANDATORY: Include the complete use case analysis from above)
4. Implementation Roadmap
5. Budget and ROI
6. Resource Assets & Implementation Support (MANDATORY: Include clickable links)
7. Risk Management
8. Next Steps

CRITICAL: Section 3 (AI Use Cases) MUST include the complete 15-20 detailed use cases from above.
CRITICAL: Include all clickable links to datasets and repositories.
`, company, industry, company, industry, research, useCases, resources)

	text, err := complete(ctx, a.llm, a.cfg, proposalSystem, prompt)
	if err != nil {
		return "", fmt.Errorf("proposal writing: %w", err)
	}
	return text, nil
}
