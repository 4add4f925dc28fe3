package agent

import (
	"context"
	"fmt"

	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/validate"
)

const useCaseSystem = `You are an AI/ML Industry Specialist and Use Case Strategist. You generate detailed, numbered AI use cases with strict category distribution. Number each use case and bold its title, for example: 1. **Intelligent Document Processing**.`

// UseCase generates the numbered use-case portfolio and regenerates it until
// it passes quota validation or the retry budget runs out
type UseCase struct {
	llm Completer
	cfg *model.Config
}

// UseCaseOutcome carries the final portfolio text alongside its validation
type UseCaseOutcome struct {
	Text       string
	Validation *model.ValidationResult
	Attempts   int
}

// NewUseCase creates the use-case agent
func NewUseCase(c Completer, cfg *model.Config) *UseCase {
	return &UseCase{llm: c, cfg: cfg}
}

func useCasePrompt(company, industry, research string) string {
	return fmt.Sprintf(`Generate EXACTLY 15-20 detailed AI use cases for %s in the %s industry.

COMPANY: %s
INDUSTRY: %s

RESEARCH FINDINGS:
%s

CRITICAL REQUIREMENTS - MUST BE FOLLOWED EXACTLY:
- Generate EXACTLY 15-20 detailed AI use cases (no more, no less)
- Distribute EXACTLY across these 5 categories:
  * Generative AI & LLMs: 4-5 use cases (include keywords: generative ai, llm, chatbot, content generation)
  * Computer Vision: 4-5 use cases (include keywords: computer vision, image recognition, visual inspection)
  * Predictive Analytics & ML: 4-5 use cases (include keywords: predictive analytics, forecasting, machine learning)
  * Natural Language Processing: 2-3 use cases (include keywords: nlp, text analysis, sentiment analysis)
  * Automation & Optimization: 2-3 use cases (include keywords: automation, optimization, process automation)

Each use case MUST include:
- Description
- ROI estimate
- Implementation complexity
- Cross-functional impact
- Business value
`, company, industry, company, industry, research)
}

// Run generates use cases, validating each draft against the category quotas.
// Drafts that fail validation are regenerated with a corrective prompt until
// the budget is exhausted, after which the last draft is accepted as is.
func (a *UseCase) Run(ctx context.Context, company, industry, research string) (*UseCaseOutcome, error) {
	base := useCasePrompt(company, industry, research)
	budget := a.cfg.Generation.MaxValidationRetries
	if budget < 0 {
		budget = 0
	}

	outcome := &UseCaseOutcome{}
	prompt := base
	for attempt := 0; attempt <= budget; attempt++ {
		text, err := complete(ctx, a.llm, a.cfg, useCaseSystem, prompt)
		if err != nil {
			return nil, fmt.Errorf("use case generation: %w", err)
		}

		outcome.Text = text
		outcome.Attempts = attempt + 1
		outcome.Validation = validate.ValidateUseCases(text)
		if outcome.Validation.Valid {
			return outcome, nil
		}

		prompt = base + "\n\n" + validate.GenerateEnhancementPrompt(outcome.Validation)
	}

	// Budget exhausted: keep the last draft and let the caller surface the
	// outstanding violations.
	return outcome, nil
}
