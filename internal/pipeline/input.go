package pipeline

import (
	"fmt"
	"strings"
)

// Industries lists the accepted industry sectors
var Industries = []string{
	"Manufacturing", "Automotive", "Finance", "Retail", "Healthcare",
	"Technology", "Energy", "Agriculture", "Transportation", "Education",
	"Real Estate", "Entertainment", "Telecommunications", "Aerospace",
	"Pharmaceuticals", "Food & Beverage", "Construction", "Other",
}

const dangerousChars = `<>"'&;()|` + "`$"

// ValidateCompany checks a company name before it is folded into prompts
func ValidateCompany(company string) error {
	trimmed := strings.TrimSpace(company)
	if len(trimmed) < 2 {
		return fmt.Errorf("company name must be at least 2 characters long")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("company name must be less than 100 characters")
	}
	if strings.ContainsAny(company, dangerousChars) {
		return fmt.Errorf("company name contains invalid characters")
	}
	return nil
}

// NormalizeIndustry matches the input against the accepted sector list,
// case-insensitively, and returns the canonical name
func NormalizeIndustry(industry string) (string, error) {
	trimmed := strings.TrimSpace(industry)
	for _, valid := range Industries {
		if strings.EqualFold(trimmed, valid) {
			return valid, nil
		}
	}
	return "", fmt.Errorf("industry must be one of: %s", strings.Join(Industries, ", "))
}
