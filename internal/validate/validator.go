// Package validate checks generated use-case text against the fixed
// category quotas and builds corrective prompts for failed runs.
package validate

import (
	"fmt"

	"github.com/casewright/casewright/internal/classify"
	"github.com/casewright/casewright/internal/extract"
	"github.com/casewright/casewright/internal/model"
)

// Validator validates use-case text against the category quota table
type Validator struct {
	classifier *classify.Classifier
	catalog    []classify.CategoryQuota
}

// NewValidator creates a validator over the fixed catalog
func NewValidator() *Validator {
	return &Validator{
		classifier: classify.NewClassifier(),
		catalog:    classify.Catalog(),
	}
}

// defaultValidator backs the package-level entry points; the validator is
// stateless so sharing one is safe for concurrent callers.
var defaultValidator = NewValidator()

// ValidateUseCases extracts, classifies and quota-checks a block of
// generated use-case text. It never returns an error: an unexpected runtime
// fault surfaces as a result carrying a single synthetic violation, so
// callers handle "validation failed" and "validator crashed" identically.
func ValidateUseCases(text string) *model.ValidationResult {
	return defaultValidator.Validate(text)
}

// Validate implements ValidateUseCases on a specific validator
func (v *Validator) Validate(text string) (result *model.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &model.ValidationResult{
				CategoryCounts: emptyCounts(),
				Violations: []model.Violation{{
					Kind:   model.ViolationInternalFailure,
					Detail: fmt.Sprintf("%v", r),
				}},
			}
		}
	}()

	records := extract.UseCases(text)
	counts := v.classifier.Counts(records)

	var violations []model.Violation

	total := len(records)
	if !model.TotalRange.Contains(total) {
		violations = append(violations, model.Violation{
			Kind:     model.ViolationGlobalCount,
			Actual:   total,
			Required: model.TotalRange,
		})
	}

	for _, q := range v.catalog {
		count := counts[q.Category]
		if !q.Required.Contains(count) {
			violations = append(violations, model.Violation{
				Kind:     model.ViolationCategoryCount,
				Category: q.Category,
				Actual:   count,
				Required: q.Required,
			})
		}
	}

	return &model.ValidationResult{
		Valid:          len(violations) == 0,
		TotalCount:     total,
		CategoryCounts: counts,
		Violations:     violations,
		Records:        records,
	}
}

func emptyCounts() map[model.Category]int {
	counts := make(map[model.Category]int)
	for _, c := range model.Categories() {
		counts[c] = 0
	}
	return counts
}
