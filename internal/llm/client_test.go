package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casewright/casewright/internal/cache"
)

func init() {
	// Disable retry sleep in all tests for fast execution
	completeSleepFunc = func(d time.Duration) {}
}

// fakeProvider scripts a sequence of responses/errors
type fakeProvider struct {
	calls int
	errs  []error
	text  string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return &CompletionResponse{Text: f.text, Model: "fake-model"}, nil
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{errors.New("request timeout"), errors.New("connection reset")},
		text: "ok",
	}
	client := NewClient(provider, nil, 0)

	resp, err := client.Complete(context.Background(), CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Unexpected text: %s", resp.Text)
	}
	if provider.calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", provider.calls)
	}
}

func TestClient_DoesNotRetryPermanentErrors(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{errors.New("API error (401): bad key")},
	}
	client := NewClient(provider, nil, 0)

	if _, err := client.Complete(context.Background(), CompletionRequest{Prompt: "p"}); err == nil {
		t.Fatal("Expected error")
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 attempt, got %d", provider.calls)
	}
}

func TestClient_CachesCompletions(t *testing.T) {
	provider := &fakeProvider{text: "cached answer"}
	memory := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(provider, memory, time.Minute)

	req := CompletionRequest{Prompt: "same prompt"}
	for i := 0; i < 3; i++ {
		resp, err := client.Complete(context.Background(), req)
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if resp.Text != "cached answer" {
			t.Errorf("Unexpected text: %s", resp.Text)
		}
	}

	if provider.calls != 1 {
		t.Errorf("Expected a single provider call, got %d", provider.calls)
	}
}

func TestNewProvider_Factory(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  bool
	}{
		{"openai", false},
		{"anthropic", false},
		{"ollama", false},
		{"claude", false},
		{"watson", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := NewProvider(Config{Provider: tt.provider, APIKey: "k"})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
		}
	}
}
