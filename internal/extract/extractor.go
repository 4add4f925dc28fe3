package extract

import (
	"regexp"
	"strings"

	"github.com/casewright/casewright/internal/model"
)

// grammar is one heading-based parsing strategy. The heading pattern locates
// record boundaries; each record's description is the text between its
// heading and the next one.
type grammar struct {
	name    string
	heading *regexp.Regexp
}

// Grammars are tried in strict priority order; the first one producing at
// least one match wins for the entire text. They are never combined.
var grammars = []grammar{
	{name: "bold-title", heading: regexp.MustCompile(`(\d+)\.\s*\*\*([^*]+)\*\*`)},
	{name: "plain-title", heading: regexp.MustCompile(`(?m)^[ \t]*(\d+)\.[ \t]*([^\n]+)\n`)},
	{name: "markdown-heading", heading: regexp.MustCompile(`(?m)^##\s*(\d+)\.[ \t]*(.+)$`)},
}

var lineMarker = regexp.MustCompile(`^(\d+)\.\s*`)

// UseCases extracts an ordered sequence of use-case records from free-form
// text. It never fails: malformed input degrades to a smaller or empty
// result. Sequence numbers are carried through as-is, including duplicates.
func UseCases(text string) []model.UseCaseRecord {
	for _, g := range grammars {
		if records := applyGrammar(g, text); len(records) > 0 {
			return records
		}
	}
	return scanLines(text)
}

// applyGrammar segments text at heading matches and takes the span up to the
// next heading (or end of text) as each record's description.
func applyGrammar(g grammar, text string) []model.UseCaseRecord {
	matches := g.heading.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var records []model.UseCaseRecord
	for i, m := range matches {
		number := text[m[2]:m[3]]
		title := strings.TrimSpace(text[m[4]:m[5]])
		if title == "" {
			continue
		}

		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		description := strings.TrimSpace(text[m[1]:bodyEnd])

		records = append(records, model.UseCaseRecord{
			Number:      number,
			Title:       title,
			Description: description,
		})
	}

	return records
}

// scanLines is the last-resort segmentation: a line starting with "<n>."
// opens a record and subsequent lines accumulate into its description.
func scanLines(text string) []model.UseCaseRecord {
	var records []model.UseCaseRecord
	var current *model.UseCaseRecord
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(strings.Join(body, " "))
		if current.Title != "" {
			records = append(records, *current)
		}
		current = nil
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := lineMarker.FindStringSubmatch(line); m != nil {
			flush()
			current = &model.UseCaseRecord{
				Number: m[1],
				Title:  strings.TrimSpace(lineMarker.ReplaceAllString(line, "")),
			}
			continue
		}
		if current != nil && line != "" {
			body = append(body, line)
		}
	}
	flush()

	return records
}
