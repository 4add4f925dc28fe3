package model

import "fmt"

// ViolationKind classifies a quota violation
type ViolationKind string

const (
	ViolationGlobalCount     ViolationKind = "global_count_out_of_range"
	ViolationCategoryCount   ViolationKind = "category_count_out_of_range"
	ViolationInternalFailure ViolationKind = "internal_failure"
)

// Violation is a single broken quota constraint.
// The human-readable sentence is derived from the structured fields at
// display time, so tests assert on fields rather than prose.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Category Category      `json:"category,omitempty"` // Set for category violations only
	Actual   int           `json:"actual"`
	Required Range         `json:"required"`
	Detail   string        `json:"detail,omitempty"` // Set for internal failures only
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationGlobalCount:
		return fmt.Sprintf("Total use cases: %d, need %s", v.Actual, v.Required)
	case ViolationCategoryCount:
		return fmt.Sprintf("%s: Found %d, need %s", v.Category, v.Actual, v.Required)
	case ViolationInternalFailure:
		return fmt.Sprintf("Validation error: %s", v.Detail)
	default:
		return string(v.Kind)
	}
}

// ValidationResult is the outcome of validating a block of use-case text.
// It is a pure function of the input text and the fixed category table.
type ValidationResult struct {
	Valid          bool             `json:"valid"`
	TotalCount     int              `json:"total_count"`
	CategoryCounts map[Category]int `json:"category_counts"` // All five keys always present
	Violations     []Violation      `json:"violations,omitempty"`
	Records        []UseCaseRecord  `json:"extracted_use_cases,omitempty"` // Kept for caller inspection
}

// Issues renders every violation as a human-readable sentence in order
func (r *ValidationResult) Issues() []string {
	issues := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		issues = append(issues, v.String())
	}
	return issues
}
