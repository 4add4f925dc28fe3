package classify

import (
	"strings"

	"github.com/casewright/casewright/internal/model"
)

// Classifier assigns use-case records to the fixed category table
type Classifier struct {
	catalog []CategoryQuota
}

// NewClassifier creates a classifier over the fixed catalog
func NewClassifier() *Classifier {
	return &Classifier{catalog: Catalog()}
}

// Counts classifies every record and returns the per-category tally. All
// five categories are present in the result, zero-filled if unused, and the
// counts always sum to len(records).
func (c *Classifier) Counts(records []model.UseCaseRecord) map[model.Category]int {
	counts := make(map[model.Category]int, len(c.catalog))
	for _, q := range c.catalog {
		counts[q.Category] = 0
	}

	for _, record := range records {
		counts[c.Classify(record)]++
	}

	return counts
}

// Classify assigns a single record to exactly one category. Keyword matching
// is case-insensitive substring containment, deliberately not word-boundary
// aware: the quotas were tuned against this exact behavior.
func (c *Classifier) Classify(record model.UseCaseRecord) model.Category {
	text := strings.ToLower(record.Title + " " + record.Description)

	best := c.catalog[0].Category
	bestScore := 0
	for _, q := range c.catalog {
		score := 0
		for _, keyword := range q.Keywords {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		// Strictly greater: the first category in declaration order wins ties.
		if score > bestScore {
			bestScore = score
			best = q.Category
		}
	}

	if bestScore > 0 {
		return best
	}

	return fallback(text)
}

// fallback categorizes a record that matched no catalog keyword, using the
// generic discriminator groups in priority order.
func fallback(text string) model.Category {
	for _, g := range fallbackGroups {
		for _, term := range g.terms {
			if strings.Contains(text, term) {
				return g.category
			}
		}
	}
	return model.CategoryAutomation
}
