package validate

import (
	"fmt"
	"strings"

	"github.com/casewright/casewright/internal/classify"
	"github.com/casewright/casewright/internal/model"
)

// GenerateEnhancementPrompt builds the corrective directive replayed into
// the generation step after a failed validation. Returns the empty string
// for a valid result.
func GenerateEnhancementPrompt(result *model.ValidationResult) string {
	if result == nil || result.Valid {
		return ""
	}

	var b strings.Builder
	b.WriteString("CRITICAL: The generated use cases do not meet requirements. Please regenerate to fix:\n\n")

	for _, violation := range result.Violations {
		fmt.Fprintf(&b, "- %s\n", violation)
	}

	b.WriteString("\nREQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Generate EXACTLY %s use cases total\n", model.TotalRange)
	b.WriteString("- Distribute across categories as follows:\n")
	for _, q := range classify.Catalog() {
		fmt.Fprintf(&b, "  * %s: %s use cases\n", q.Category, q.Required)
	}

	b.WriteString("\nEach use case MUST include:\n")
	b.WriteString("- Clear title with category keywords\n")
	b.WriteString("- Detailed description\n")
	b.WriteString("- ROI estimate\n")
	b.WriteString("- Implementation complexity\n")
	b.WriteString("- Business value\n")

	return b.String()
}
