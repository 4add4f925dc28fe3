package model

import "time"

// Config holds the full application configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Generation  GenerationConfig  `yaml:"generation" json:"generation"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// LLMConfig configures the completion provider
type LLMConfig struct {
	Provider    string  `yaml:"provider" json:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model" json:"model"`       // Provider-specific model name
	APIKey      string  `yaml:"-" json:"-"`               // Never serialized; from env only
	BaseURL     string  `yaml:"base_url" json:"base_url"` // Custom endpoint (OpenRouter, Ollama)
	Timeout     int     `yaml:"timeout" json:"timeout"`   // Seconds per completion call
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float32 `yaml:"temperature" json:"temperature"`
}

// SearchConfig configures the external resource search tools
type SearchConfig struct {
	SerperAPIKey   string  `yaml:"-" json:"-"`
	KaggleUsername string  `yaml:"-" json:"-"`
	KaggleKey      string  `yaml:"-" json:"-"`
	GitHubToken    string  `yaml:"-" json:"-"`
	MaxResults     int     `yaml:"max_results" json:"max_results"`
	RatePerSecond  float64 `yaml:"rate_per_second" json:"rate_per_second"` // Per-host request pacing
	RateBurst      int     `yaml:"rate_burst" json:"rate_burst"`
}

// HTTPConfig configures outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// GenerationConfig configures the agent workflow
type GenerationConfig struct {
	MaxValidationRetries int `yaml:"max_validation_retries" json:"max_validation_retries"` // Use-case regeneration budget
}

// ConcurrencyConfig configures worker pools
type ConcurrencyConfig struct {
	LinkCheckWorkers int `yaml:"link_check_workers" json:"link_check_workers"`
	BatchWorkers     int `yaml:"batch_workers" json:"batch_workers"`
}

// CacheConfig configures the layered cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Dir           string `yaml:"dir" json:"dir"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     120,
			MaxTokens:   4000,
			Temperature: 0.7,
		},
		Search: SearchConfig{
			MaxResults:    5,
			RatePerSecond: 2,
			RateBurst:     5,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Casewright/0.1 (+https://github.com/casewright/casewright)",
			MaxBodyBytes: 2_000_000,
		},
		Generation: GenerationConfig{
			MaxValidationRetries: 3,
		},
		Concurrency: ConcurrencyConfig{
			LinkCheckWorkers: 10,
			BatchWorkers:     4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".casewright-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Dir:           "./casewright-reports",
			IncludeFooter: true,
		},
	}
}
