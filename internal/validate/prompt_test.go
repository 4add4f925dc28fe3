package validate

import (
	"strings"
	"testing"

	"github.com/casewright/casewright/internal/model"
)

func TestGenerateEnhancementPrompt_ValidResult(t *testing.T) {
	result := ValidateUseCases(buildText(compliantTitles()))
	if !result.Valid {
		t.Fatalf("Fixture should be valid, got %v", result.Issues())
	}
	if prompt := GenerateEnhancementPrompt(result); prompt != "" {
		t.Errorf("Expected empty prompt for valid result, got %q", prompt)
	}
	if prompt := GenerateEnhancementPrompt(nil); prompt != "" {
		t.Errorf("Expected empty prompt for nil result, got %q", prompt)
	}
}

func TestGenerateEnhancementPrompt_Content(t *testing.T) {
	result := ValidateUseCases("")
	prompt := GenerateEnhancementPrompt(result)

	// Every violation verbatim.
	for _, issue := range result.Issues() {
		if !strings.Contains(prompt, issue) {
			t.Errorf("Prompt missing violation %q", issue)
		}
	}

	// Full requirement table: global range plus each category's range.
	if !strings.Contains(prompt, "15-20 use cases total") {
		t.Error("Prompt missing global range")
	}
	wantLines := []string{
		"Generative AI & LLMs: 4-5 use cases",
		"Computer Vision: 4-5 use cases",
		"Predictive Analytics & ML: 4-5 use cases",
		"Natural Language Processing: 2-3 use cases",
		"Automation & Optimization: 2-3 use cases",
	}
	for _, line := range wantLines {
		if !strings.Contains(prompt, line) {
			t.Errorf("Prompt missing requirement line %q", line)
		}
	}

	// Mandatory per-use-case content fields.
	for _, field := range []string{"ROI estimate", "Implementation complexity", "Business value", "Detailed description"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("Prompt missing field %q", field)
		}
	}
}

func TestGenerateEnhancementPrompt_NamesBrokenCategory(t *testing.T) {
	result := &model.ValidationResult{
		Valid: false,
		Violations: []model.Violation{{
			Kind:     model.ViolationCategoryCount,
			Category: model.CategoryComputerVision,
			Actual:   1,
			Required: model.Range{Min: 4, Max: 5},
		}},
	}

	prompt := GenerateEnhancementPrompt(result)
	if !strings.Contains(prompt, "Computer Vision: Found 1, need 4-5") {
		t.Errorf("Prompt missing rendered violation, got:\n%s", prompt)
	}
}
