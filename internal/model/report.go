package model

import "time"

// Proposal represents the complete generated proposal artifact
type Proposal struct {
	Company     string    `json:"company"`
	Industry    string    `json:"industry"`
	GeneratedAt time.Time `json:"generated_at"`
	Status      string    `json:"status"` // "success" or "accepted_with_warnings"

	Research  string `json:"research_findings"`
	UseCases  string `json:"use_cases"`
	Resources string `json:"resources"`
	Final     string `json:"result"`

	Validation *ValidationResult `json:"validation,omitempty"` // Outcome of the last validation pass
	Attempts   int               `json:"attempts"`             // Use-case generation attempts consumed

	Datasets     []Dataset    `json:"datasets,omitempty"`
	Repositories []Repository `json:"repositories,omitempty"`
	LinkChecks   []LinkCheck  `json:"link_checks,omitempty"`

	LLMProvider string `json:"llm_provider,omitempty"`
	LLMModel    string `json:"llm_model,omitempty"`
}

// SearchHit is a single organic web search result
type SearchHit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}

// Dataset is a Kaggle dataset reference collected for implementation support
type Dataset struct {
	Title     string   `json:"title"`
	Owner     string   `json:"owner,omitempty"`
	URL       string   `json:"url"`
	Size      string   `json:"size,omitempty"`
	Downloads int      `json:"downloads,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Repository is a GitHub repository reference collected for implementation support
type Repository struct {
	FullName    string `json:"full_name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars,omitempty"`
	Language    string `json:"language,omitempty"`
}

// LinkCheck records the accessibility probe of a collected resource link
type LinkCheck struct {
	URL          string `json:"url"`
	IsAccessible bool   `json:"is_accessible"`
	StatusCode   int    `json:"status_code,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	PageTitle    string `json:"page_title,omitempty"` // From a robots-permitted GET, when available
	Error        string `json:"error,omitempty"`
}
