package model

import "fmt"

// UseCaseRecord represents a single use case extracted from generated text
type UseCaseRecord struct {
	Number      string `json:"number"`                // Ordinal label as it appeared in source ("1", "12"); not deduplicated
	Title       string `json:"title"`                 // Trimmed heading text, never empty
	Description string `json:"description,omitempty"` // Trimmed body text, may be empty
}

// Category is one of the five fixed AI technology classification buckets
type Category string

const (
	CategoryGenerativeAI   Category = "Generative AI & LLMs"
	CategoryComputerVision Category = "Computer Vision"
	CategoryPredictive     Category = "Predictive Analytics & ML"
	CategoryNLP            Category = "Natural Language Processing"
	CategoryAutomation     Category = "Automation & Optimization"
)

// Categories returns all categories in their fixed declaration order.
// This order drives classification tie-breaks and violation reporting.
func Categories() []Category {
	return []Category{
		CategoryGenerativeAI,
		CategoryComputerVision,
		CategoryPredictive,
		CategoryNLP,
		CategoryAutomation,
	}
}

// Range is an inclusive [Min, Max] count requirement
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n falls within the range
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// TotalRange is the required range for the overall use-case count
var TotalRange = Range{Min: 15, Max: 20}
