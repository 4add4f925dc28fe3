package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/casewright/casewright/internal/classify"
	"github.com/casewright/casewright/internal/model"
)

// Renderer writes proposals as consolidated Markdown reports and JSON
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full proposal as indented JSON
func (r *Renderer) RenderJSON(p *model.Proposal, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// RenderMarkdown writes the consolidated report
func (r *Renderer) RenderMarkdown(p *model.Proposal, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, []byte(r.Markdown(p)), 0644)
}

// Markdown builds the consolidated multi-section report
func (r *Renderer) Markdown(p *model.Proposal) string {
	var sections []string

	sections = append(sections, fmt.Sprintf(`# AI Use Case Generation Report
## %s - %s Sector

**Generated:** %s
**Status:** %s

---`, p.Company, p.Industry, p.GeneratedAt.Format("2006-01-02 15:04:05"), p.Status))

	sections = append(sections, fmt.Sprintf(`## 1. Executive Summary

This report presents AI and GenAI use cases tailored for %s in the %s industry. A multi-agent research workflow conducted market analysis and identified high-impact AI implementation opportunities across five core technology categories.

### Key Findings:
- **Industry Analysis**: Market research conducted using authoritative sources
- **Use Case Generation**: %d use cases across 5 technology categories
- **Resource Identification**: Curated datasets and implementation resources from Kaggle and GitHub
- **Business Impact**: Each use case includes ROI estimates and implementation complexity analysis`,
		p.Company, p.Industry, totalUseCases(p)))

	sections = append(sections, `## 2. Methodology

### Multi-Agent Research Architecture
Proposal generation runs a sequential 4-agent workflow:

#### Research Agent
- Market and industry analysis grounded in web search results
- Competitive landscape assessment

#### Use Case Generation Agent
- Generates 15-20 detailed AI use cases
- Strict category distribution validation with automatic regeneration
- ROI and complexity analysis

#### Resource Collection Agent
- Curates Kaggle datasets and GitHub repositories
- Quality assessment and relevance scoring

#### Proposal Generation Agent
- Consolidates findings into a business proposal
- Actionable implementation roadmap`)

	sections = append(sections, fmt.Sprintf(`## 3. Industry Research and Analysis

%s`, p.Research))

	sections = append(sections, fmt.Sprintf(`## 4. AI Use Cases Portfolio

### Overview
The following AI use cases are organized across five core technology categories:

- **Generative AI & LLMs**: 4-5 use cases
- **Computer Vision**: 4-5 use cases
- **Predictive Analytics & ML**: 4-5 use cases
- **Natural Language Processing**: 2-3 use cases
- **Automation & Optimization**: 2-3 use cases

%s`, p.UseCases))

	if p.Validation != nil {
		sections = append(sections, renderValidation(p))
	}

	sections = append(sections, fmt.Sprintf(`## 5. Resource Assets and Implementation Support

### Curated Resources
The following datasets and repositories have been identified to support use case implementation:

%s`, p.Resources))

	if len(p.LinkChecks) > 0 {
		sections = append(sections, renderLinkChecks(p.LinkChecks))
	}

	sections = append(sections, `## 6. Implementation Roadmap

### Phase 1: Foundation (Months 1-3)
- Infrastructure setup and team formation
- Data pipeline development
- Pilot use case selection and development

### Phase 2: Core Implementation (Months 4-9)
- Primary use cases implementation
- System integration and testing
- Performance monitoring and optimization

### Phase 3: Scale and Enhancement (Months 10-12)
- Remaining use cases deployment
- Advanced analytics and monitoring
- Continuous improvement processes`)

	sections = append(sections, `## 7. Budget and ROI Analysis

### Investment Categories
- **Technology Infrastructure (35-40%)**: Cloud resources, AI platforms, development tools
- **Human Resources (40-45%)**: AI engineers, project managers, training
- **Data and Licensing (10-15%)**: Dataset acquisition, API services, software licenses
- **Operations and Maintenance (5-10%)**: Monitoring, updates, support

### ROI Projections
- **Year 1**: Infrastructure investment, initial cost savings
- **Year 2**: Operational efficiency gains, process optimization
- **Year 3**: Revenue enhancement, competitive advantage`)

	sections = append(sections, `## 8. Risk Management

### Key Risks and Mitigation Strategies
- **Technical Risks**: Model performance, data quality, integration challenges
- **Business Risks**: User adoption, ROI realization, competitive response
- **Operational Risks**: Talent availability, technology evolution, budget management`)

	sections = append(sections, fmt.Sprintf(`## 9. Final Proposal

%s`, p.Final))

	sections = append(sections, fmt.Sprintf(`## 10. Results and Conclusions

This analysis identified significant AI implementation opportunities for %s in the %s sector. Through the multi-agent workflow, %d use cases were generated and validated against strict category distribution requirements.`,
		p.Company, p.Industry, totalUseCases(p)))

	sections = append(sections, `## 11. References

### Sources
- Industry reports and analyses surfaced through web search
- Kaggle datasets and GitHub implementation repositories`)

	report := strings.Join(sections, "\n\n")
	if r.includeFooter {
		report += "\n\n---\n\n*Generated by casewright, a multi-agent AI use case proposal generator.*\n"
	}
	return report
}

// RenderSummary prints a short result summary to stdout
func (r *Renderer) RenderSummary(p *model.Proposal) {
	fmt.Printf("\n%s (%s)\n", p.Company, p.Industry)
	fmt.Printf("Status: %s\n", p.Status)
	fmt.Printf("Use cases: %d in %d attempt(s)\n", totalUseCases(p), p.Attempts)
	if p.Validation != nil && !p.Validation.Valid {
		for _, issue := range p.Validation.Issues() {
			fmt.Printf("  ! %s\n", issue)
		}
	}
	accessible := 0
	for _, c := range p.LinkChecks {
		if c.IsAccessible {
			accessible++
		}
	}
	if len(p.LinkChecks) > 0 {
		fmt.Printf("Resource links: %d/%d accessible\n", accessible, len(p.LinkChecks))
	}
}

func renderValidation(p *model.Proposal) string {
	var b strings.Builder
	b.WriteString("### Category Distribution\n\n")
	b.WriteString("| Category | Count | Required |\n|---|---|---|\n")
	for _, q := range classify.Catalog() {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", q.Category, p.Validation.CategoryCounts[q.Category], q.Required)
	}
	if !p.Validation.Valid {
		b.WriteString("\n### Outstanding Issues\n\n")
		for _, issue := range p.Validation.Issues() {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLinkChecks(checks []model.LinkCheck) string {
	var b strings.Builder
	b.WriteString("### Link Verification\n\n")
	for _, c := range checks {
		mark := "✗"
		if c.IsAccessible {
			mark = "✓"
		}
		fmt.Fprintf(&b, "- %s %s", mark, c.URL)
		if c.PageTitle != "" {
			fmt.Fprintf(&b, " (%s)", c.PageTitle)
		}
		if c.Error != "" {
			fmt.Fprintf(&b, " [%s]", c.Error)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func totalUseCases(p *model.Proposal) int {
	if p.Validation == nil {
		return 0
	}
	return p.Validation.TotalCount
}

// ReportBaseName builds the timestamped output file base name
func ReportBaseName(p *model.Proposal) string {
	company := strings.ReplaceAll(p.Company, " ", "_")
	industry := strings.ReplaceAll(p.Industry, " ", "_")
	return fmt.Sprintf("%s_%s_%s", company, industry, p.GeneratedAt.Format("20060102_150405"))
}
