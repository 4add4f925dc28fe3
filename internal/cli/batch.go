package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/casewright/casewright/internal/pipeline"
	"github.com/casewright/casewright/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate proposals for multiple companies from a file",
	Long: `Batch generates proposals for multiple targets concurrently:
- Read "Company, Industry" pairs from the input file (one per line)
- Generate proposals in parallel with a configurable worker count
- Write individual consolidated reports for each target

Example:
  casewright batch targets.txt
  casewright batch targets.txt --concurrency 4 --output-dir ./reports
  casewright batch targets.txt --llm-provider ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 60*time.Minute, "total timeout for batch processing")

	// Shared generation flags
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./casewright-reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable completion and search caching")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, openrouter, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom LLM endpoint (OpenRouter, Ollama)")
	batchCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "use-case regeneration budget after a failed validation")
	batchCmd.Flags().Float64Var(&searchRate, "search-rate", 2, "outbound search requests per second per host")
	batchCmd.Flags().IntVar(&linkWorkers, "link-workers", 10, "concurrent resource link checks")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "LLM:        %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s (%s): %v\n", result.Target.Company, result.Target.Industry, result.Error)
			continue
		}

		successCount++

		base := sanitizeFilename(pipeline.ReportBaseName(result.Proposal))
		jsonPath := filepath.Join(outputDir, base+".json")
		mdPath := filepath.Join(outputDir, base+"_CONSOLIDATED.md")

		if err := renderer.RenderJSON(result.Proposal, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Target.Company, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Proposal, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Target.Company, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%s): %s\n", result.Target.Company, result.Target.Industry, result.Proposal.Status)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d\n", len(results), successCount, failureCount)
	fmt.Fprintf(os.Stderr, "Output: %s\n", outputDir)

	return nil
}
