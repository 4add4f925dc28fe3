package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casewright/casewright/internal/classify"
	"github.com/casewright/casewright/internal/validate"
)

var showPrompt bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a use-case document against the category quotas",
	Long: `Validate extracts numbered use cases from a text or Markdown file,
classifies each into one of the five technology categories, and checks
the portfolio against the distribution quotas (15-20 total; 4-5 each for
Generative AI, Computer Vision and Predictive Analytics; 2-3 each for
NLP and Automation).

Example:
  casewright validate draft.md
  casewright validate draft.md --show-prompt`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the corrective prompt for a failing document")
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	result := validate.ValidateUseCases(string(data))

	fmt.Printf("Use cases: %d\n\n", result.TotalCount)
	for _, quota := range classify.Catalog() {
		mark := "✓"
		if !quota.Required.Contains(result.CategoryCounts[quota.Category]) {
			mark = "✗"
		}
		fmt.Printf("  %s %-32s %d (need %s)\n", mark, quota.Category, result.CategoryCounts[quota.Category], quota.Required)
	}
	fmt.Println()

	if result.Valid {
		fmt.Println("✓ Portfolio meets all distribution requirements")
		return nil
	}

	fmt.Println("✗ Portfolio does not meet requirements:")
	for _, issue := range result.Issues() {
		fmt.Printf("  - %s\n", issue)
	}

	if showPrompt {
		fmt.Println()
		fmt.Println(validate.GenerateEnhancementPrompt(result))
	}

	// Non-zero exit so scripts can gate on validity
	return fmt.Errorf("use case validation failed")
}
