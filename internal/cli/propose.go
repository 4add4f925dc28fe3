package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/casewright/casewright/internal/model"
	"github.com/casewright/casewright/internal/pipeline"
)

var (
	outputDir   string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	llmProvider string
	llmModel    string
	llmBaseURL  string
	maxRetries  int
	searchRate  float64
	linkWorkers int
)

// proposeCmd represents the propose command
var proposeCmd = &cobra.Command{
	Use:   "propose <company> <industry>",
	Short: "Generate an AI use case proposal for a company",
	Long: `Propose runs the full multi-agent workflow for one company:
- Conduct market research grounded in web search results
- Generate 15-20 AI use cases validated against category quotas
- Collect supporting Kaggle datasets and GitHub repositories
- Verify resource links are accessible
- Write a consolidated Markdown report and JSON artifact

Example:
  casewright propose "Acme Corp" Retail
  casewright propose "Globex" Energy --llm-provider anthropic --llm-model claude-3-5-sonnet-20241022
  casewright propose "Initech" Technology --output-dir ./reports --no-cache`,
	Args: cobra.ExactArgs(2),
	RunE: runPropose,
}

func init() {
	rootCmd.AddCommand(proposeCmd)

	proposeCmd.Flags().StringVar(&outputDir, "output-dir", "./casewright-reports", "output directory for reports")
	proposeCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Minute, "overall generation timeout")
	proposeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable completion and search caching")
	proposeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	proposeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, openrouter, anthropic, ollama)")
	proposeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	proposeCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom LLM endpoint (OpenRouter, Ollama)")
	proposeCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "use-case regeneration budget after a failed validation")
	proposeCmd.Flags().Float64Var(&searchRate, "search-rate", 2, "outbound search requests per second per host")
	proposeCmd.Flags().IntVar(&linkWorkers, "link-workers", 10, "concurrent resource link checks")
}

// buildConfig assembles configuration from flags and environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.BaseURL = llmBaseURL
	cfg.Cache.Enabled = !noCache
	cfg.Generation.MaxValidationRetries = maxRetries
	cfg.Search.RatePerSecond = searchRate
	cfg.Concurrency.LinkCheckWorkers = linkWorkers
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	switch llmProvider {
	case "openai", "openrouter":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	// Search credentials are optional; unconfigured tools are skipped
	cfg.Search.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	cfg.Search.KaggleUsername = os.Getenv("KAGGLE_USERNAME")
	cfg.Search.KaggleKey = os.Getenv("KAGGLE_KEY")
	cfg.Search.GitHubToken = os.Getenv("GITHUB_TOKEN")

	return cfg, nil
}

func runPropose(cmd *cobra.Command, args []string) error {
	company, industry := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Company:  %s\n", company)
		fmt.Fprintf(os.Stderr, "Industry: %s\n", industry)
		fmt.Fprintf(os.Stderr, "LLM:      %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Cache:    %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	proposal, err := p.Generate(ctx, company, industry)
	if err != nil {
		return fmt.Errorf("generate proposal: %w", err)
	}

	base := pipeline.ReportBaseName(proposal)
	jsonPath := filepath.Join(outputDir, base+".json")
	mdPath := filepath.Join(outputDir, base+"_CONSOLIDATED.md")

	if err := p.RenderProposal(proposal, jsonPath, mdPath, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if !verbose {
		fmt.Printf("✓ Wrote %s\n", mdPath)
	}

	return nil
}

// sanitizeFilename replaces characters that are unsafe in file names
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
