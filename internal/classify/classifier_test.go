package classify

import (
	"fmt"
	"testing"

	"github.com/casewright/casewright/internal/model"
)

func TestClassify_KeywordScoring(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name   string
		record model.UseCaseRecord
		want   model.Category
	}{
		{
			name:   "generative",
			record: model.UseCaseRecord{Title: "Support chatbot", Description: "A conversational ai assistant built on an llm"},
			want:   model.CategoryGenerativeAI,
		},
		{
			name:   "vision",
			record: model.UseCaseRecord{Title: "Visual inspection", Description: "computer vision with object detection on the line"},
			want:   model.CategoryComputerVision,
		},
		{
			name:   "predictive",
			record: model.UseCaseRecord{Title: "Demand forecasting", Description: "time series machine learning"},
			want:   model.CategoryPredictive,
		},
		{
			name:   "nlp",
			record: model.UseCaseRecord{Title: "Sentiment analysis", Description: "nlp over support tickets with text mining"},
			want:   model.CategoryNLP,
		},
		{
			name:   "automation",
			record: model.UseCaseRecord{Title: "Invoice handling", Description: "robotic process automation and workflow automation"},
			want:   model.CategoryAutomation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.record); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_TieBreakDeclarationOrder(t *testing.T) {
	classifier := NewClassifier()

	// Exactly one Generative keyword ("chatbot") and one Computer Vision
	// keyword ("ocr"): equal scores, first declared category wins.
	record := model.UseCaseRecord{Title: "chatbot plus ocr", Description: ""}
	if got := classifier.Classify(record); got != model.CategoryGenerativeAI {
		t.Errorf("Tie should resolve to %q, got %q", model.CategoryGenerativeAI, got)
	}
}

func TestClassify_SubstringMatchingNotWordBounded(t *testing.T) {
	classifier := NewClassifier()

	// "llm" appears inside an unrelated word; substring matching counts it.
	record := model.UseCaseRecord{Title: "fullmetal process review", Description: ""}
	if got := classifier.Classify(record); got != model.CategoryGenerativeAI {
		t.Errorf("Expected substring hit to classify as %q, got %q", model.CategoryGenerativeAI, got)
	}
}

func TestClassify_FallbackGroups(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		text string
		want model.Category
	}{
		{"generate weekly digests", model.CategoryGenerativeAI},
		{"scan each frame for visual cues", model.CategoryComputerVision},
		{"forecast staffing needs", model.CategoryPredictive},
		{"summarize every document", model.CategoryNLP},
		{"tighten the warehouse routine", model.CategoryAutomation},
	}

	for _, tt := range tests {
		record := model.UseCaseRecord{Title: tt.text}
		if got := classifier.Classify(record); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestClassify_NeverUnclassified(t *testing.T) {
	classifier := NewClassifier()
	valid := make(map[model.Category]bool)
	for _, c := range model.Categories() {
		valid[c] = true
	}

	for _, title := range []string{"", "xyzzy", "quarterly sync", "???"} {
		got := classifier.Classify(model.UseCaseRecord{Title: title})
		if !valid[got] {
			t.Errorf("Classify(%q) returned unknown category %q", title, got)
		}
	}
}

func TestCounts_Conservation(t *testing.T) {
	classifier := NewClassifier()

	var records []model.UseCaseRecord
	for i := 0; i < 9; i++ {
		records = append(records, model.UseCaseRecord{Title: fmt.Sprintf("case %d", i)})
	}
	records = append(records,
		model.UseCaseRecord{Title: "chatbot"},
		model.UseCaseRecord{Title: "computer vision"},
	)

	counts := classifier.Counts(records)

	if len(counts) != len(model.Categories()) {
		t.Errorf("Expected all %d categories present, got %d", len(model.Categories()), len(counts))
	}

	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != len(records) {
		t.Errorf("Counts sum to %d, want %d", sum, len(records))
	}
}

func TestCounts_EmptyInput(t *testing.T) {
	counts := NewClassifier().Counts(nil)

	for _, c := range model.Categories() {
		if n, ok := counts[c]; !ok || n != 0 {
			t.Errorf("Expected zero-filled entry for %q, got %d (present=%v)", c, n, ok)
		}
	}
}

func TestCatalog_Order(t *testing.T) {
	catalog := Catalog()
	declared := model.Categories()

	if len(catalog) != len(declared) {
		t.Fatalf("Catalog has %d entries, want %d", len(catalog), len(declared))
	}
	for i, q := range catalog {
		if q.Category != declared[i] {
			t.Errorf("Catalog[%d] = %q, want %q", i, q.Category, declared[i])
		}
	}
}
