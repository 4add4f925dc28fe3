package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/casewright/casewright/internal/llm"
	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/search"
)

// scriptedCompleter replays canned responses and records every request
type scriptedCompleter struct {
	responses []string
	err       error
	calls     []llm.CompletionRequest
}

func (s *scriptedCompleter) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	idx := len(s.calls) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return &llm.CompletionResponse{Text: s.responses[idx], Model: req.Model}, nil
}

type fakeWeb struct {
	hits    []model.SearchHit
	err     error
	queries []string
}

func (f *fakeWeb) Search(_ context.Context, query string) ([]model.SearchHit, error) {
	f.queries = append(f.queries, query)
	return f.hits, f.err
}

type fakeKaggle struct{ datasets []model.Dataset }

func (f *fakeKaggle) Datasets(context.Context, string) ([]model.Dataset, error) {
	return f.datasets, nil
}

type fakeGitHub struct{ repos []model.Repository }

func (f *fakeGitHub) Repositories(context.Context, string) ([]model.Repository, error) {
	return f.repos, nil
}

// compliantPortfolio builds a numbered use-case list that satisfies every
// category quota: 5 generative, 4 vision, 4 predictive, 2 NLP, 2 automation.
func compliantPortfolio() string {
	titles := []string{
		"Conversational AI Assistant", "Conversational AI Assistant", "Conversational AI Assistant",
		"Conversational AI Assistant", "Conversational AI Assistant",
		"Visual Inspection Station", "Visual Inspection Station", "Visual Inspection Station",
		"Visual Inspection Station",
		"Demand Forecasting Engine", "Demand Forecasting Engine", "Demand Forecasting Engine",
		"Demand Forecasting Engine",
		"Sentiment Analysis of Reviews", "Sentiment Analysis of Reviews",
		"Workflow Automation Hub", "Workflow Automation Hub",
	}
	var b strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&b, "%d. **%s**\nDelivers measurable business impact.\n\n", i+1, title)
	}
	return b.String()
}

func TestUseCase_ValidFirstDraft(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{compliantPortfolio()}}
	a := NewUseCase(completer, model.DefaultConfig())

	outcome, err := a.Run(context.Background(), "Acme", "Retail", "research findings")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !outcome.Validation.Valid {
		t.Errorf("Expected valid portfolio, got violations: %v", outcome.Validation.Issues())
	}
	if outcome.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", outcome.Attempts)
	}
	if len(completer.calls) != 1 {
		t.Errorf("Expected 1 completion call, got %d", len(completer.calls))
	}
	if !strings.Contains(completer.calls[0].Prompt, "research findings") {
		t.Error("Prompt missing research findings")
	}
}

func TestUseCase_RegeneratesWithCorrectivePrompt(t *testing.T) {
	short := "1. **Conversational AI Assistant**\nToo few.\n"
	completer := &scriptedCompleter{responses: []string{short, compliantPortfolio()}}
	a := NewUseCase(completer, model.DefaultConfig())

	outcome, err := a.Run(context.Background(), "Acme", "Retail", "findings")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !outcome.Validation.Valid {
		t.Errorf("Expected valid after regeneration: %v", outcome.Validation.Issues())
	}
	if outcome.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", outcome.Attempts)
	}
	if !strings.Contains(completer.calls[1].Prompt, "CRITICAL: The generated use cases do not meet requirements") {
		t.Error("Regeneration prompt missing corrective header")
	}
	if !strings.Contains(completer.calls[1].Prompt, "15-20 use cases total") {
		t.Error("Regeneration prompt missing quota requirements")
	}
}

func TestUseCase_AcceptsLastDraftWhenBudgetExhausted(t *testing.T) {
	short := "1. **Conversational AI Assistant**\nStill too few.\n"
	completer := &scriptedCompleter{responses: []string{short}}
	cfg := model.DefaultConfig()
	cfg.Generation.MaxValidationRetries = 2
	a := NewUseCase(completer, cfg)

	outcome, err := a.Run(context.Background(), "Acme", "Retail", "findings")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Validation.Valid {
		t.Error("Expected invalid final draft")
	}
	if outcome.Attempts != 3 {
		t.Errorf("Expected initial draft plus 2 retries, got %d attempts", outcome.Attempts)
	}
	if outcome.Text != short {
		t.Error("Expected last draft to be kept")
	}
}

func TestUseCase_PropagatesCompletionError(t *testing.T) {
	completer := &scriptedCompleter{err: errors.New("provider down")}
	a := NewUseCase(completer, model.DefaultConfig())

	if _, err := a.Run(context.Background(), "Acme", "Retail", ""); err == nil {
		t.Error("Expected completion error")
	}
}

func TestResearch_FoldsSearchResults(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"report"}}
	web := &fakeWeb{hits: []model.SearchHit{{Title: "AI in Retail", Link: "https://example.com/ai"}}}
	a := NewResearch(completer, web, model.DefaultConfig())

	out, err := a.Run(context.Background(), "Acme", "Retail")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "report" {
		t.Errorf("Unexpected output: %q", out)
	}
	if len(web.queries) != 4 {
		t.Errorf("Expected 4 search queries, got %d", len(web.queries))
	}
	if !strings.Contains(completer.calls[0].Prompt, "https://example.com/ai") {
		t.Error("Prompt missing search results")
	}
}

func TestResearch_SkipsUnconfiguredSearch(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"report"}}
	web := &fakeWeb{err: fmt.Errorf("serper: %w", search.ErrNotConfigured)}
	a := NewResearch(completer, web, model.DefaultConfig())

	if _, err := a.Run(context.Background(), "Acme", "Retail"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(web.queries) != 1 {
		t.Errorf("Expected search abandoned after first unconfigured error, got %d queries", len(web.queries))
	}
	if strings.Contains(completer.calls[0].Prompt, "SEARCH RESULTS") {
		t.Error("Prompt should not contain an empty search section")
	}
}

func TestResource_CollectsAndAssesses(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"assessment"}}
	kaggle := &fakeKaggle{datasets: []model.Dataset{{Title: "Churn", URL: "https://www.kaggle.com/datasets/x/churn"}}}
	github := &fakeGitHub{repos: []model.Repository{{FullName: "org/repo", URL: "https://github.com/org/repo", Stars: 10}}}
	a := NewResource(completer, kaggle, github, model.DefaultConfig())

	outcome, err := a.Run(context.Background(), "Acme", "Retail", "research", "use cases")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Text != "assessment" {
		t.Errorf("Unexpected text: %q", outcome.Text)
	}
	if len(outcome.Datasets) != 2 || len(outcome.Repositories) != 2 {
		t.Errorf("Expected resources from both queries, got %d datasets / %d repos",
			len(outcome.Datasets), len(outcome.Repositories))
	}
	prompt := completer.calls[0].Prompt
	for _, want := range []string{"https://www.kaggle.com/datasets/x/churn", "https://github.com/org/repo", "use cases"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestProposal_IncludesAllStages(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"final proposal"}}
	a := NewProposal(completer, model.DefaultConfig())

	out, err := a.Run(context.Background(), "Acme", "Retail", "research text", "use case text", "resource text")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "final proposal" {
		t.Errorf("Unexpected output: %q", out)
	}
	prompt := completer.calls[0].Prompt
	for _, want := range []string{"research text", "use case text", "resource text", "Executive Summary", "Risk Management"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}
