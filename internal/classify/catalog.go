package classify

import "github.com/casewright/casewright/internal/model"

// CategoryQuota pairs a category's keyword set with its required count range
type CategoryQuota struct {
	Category model.Category
	Keywords []string
	Required model.Range
}

// Catalog returns the fixed category table in declaration order. The order
// is load-bearing: it decides classification tie-breaks and the order
// violations are reported in.
func Catalog() []CategoryQuota {
	return []CategoryQuota{
		{
			Category: model.CategoryGenerativeAI,
			Required: model.Range{Min: 4, Max: 5},
			Keywords: []string{
				"generative ai", "llm", "large language model", "gpt", "chatbot",
				"content generation", "text generation", "natural language generation",
				"conversational ai", "language model", "prompt engineering", "text synthesis",
			},
		},
		{
			Category: model.CategoryComputerVision,
			Required: model.Range{Min: 4, Max: 5},
			Keywords: []string{
				"computer vision", "image recognition", "object detection", "facial recognition",
				"image analysis", "visual inspection", "ocr", "video analysis",
				"image processing", "pattern recognition", "visual ai", "image classification",
			},
		},
		{
			Category: model.CategoryPredictive,
			Required: model.Range{Min: 4, Max: 5},
			Keywords: []string{
				"predictive analytics", "machine learning", "forecasting", "prediction",
				"regression", "classification", "clustering", "anomaly detection",
				"time series", "demand forecasting", "risk prediction", "predictive modeling",
			},
		},
		{
			Category: model.CategoryNLP,
			Required: model.Range{Min: 2, Max: 3},
			Keywords: []string{
				"natural language processing", "nlp", "sentiment analysis", "text mining",
				"text analysis", "language processing", "text classification",
				"named entity recognition", "text extraction", "document processing",
			},
		},
		{
			Category: model.CategoryAutomation,
			Required: model.Range{Min: 2, Max: 3},
			Keywords: []string{
				"automation", "optimization", "process automation", "workflow automation",
				"robotic process automation", "rpa", "operational efficiency",
				"resource optimization", "supply chain optimization", "business process",
			},
		},
	}
}

// fallbackGroup maps generic discriminator terms to a category when no
// catalog keyword matched at all.
type fallbackGroup struct {
	terms    []string
	category model.Category
}

// fallbackGroups are tested in order; first match wins. Automation &
// Optimization is the unconditional default when nothing matches.
var fallbackGroups = []fallbackGroup{
	{terms: []string{"chatbot", "content", "generate", "language"}, category: model.CategoryGenerativeAI},
	{terms: []string{"image", "visual", "vision", "detection"}, category: model.CategoryComputerVision},
	{terms: []string{"predict", "forecast", "analytics", "model"}, category: model.CategoryPredictive},
	{terms: []string{"text", "document", "sentiment"}, category: model.CategoryNLP},
}
