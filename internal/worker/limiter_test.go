package worker

import (
	"context"
	"testing"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://google.serper.dev/search"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different domain draws from its own bucket
	if err := limiter.Wait(ctx, "https://api.github.com/search/repositories"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "https://www.kaggle.com/api/v1/datasets/list"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst 1, so the token is spent
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Different domain should be allowed
	if !limiter.Allow("https://api.github.com") {
		t.Errorf("expected allow for other domain")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	domain := "slow.com"

	limiter.SetDomainRate(domain, 0.1, 1)

	// First request passes (burst 1)
	if !limiter.Allow("http://" + domain) {
		t.Errorf("first request should pass")
	}

	// Second request fails
	if limiter.Allow("http://" + domain) {
		t.Errorf("second request should fail")
	}

	// Other domain still fast
	if !limiter.Allow("http://fast.com") {
		t.Errorf("other domain should pass")
	}
}

func TestExtractDomain(t *testing.T) {
	domain, err := extractDomain("http://example.com/foo")
	if err != nil {
		t.Fatalf("extractDomain failed: %v", err)
	}
	if domain != "example.com" {
		t.Errorf("expected example.com, got %s", domain)
	}

	if _, err := extractDomain("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
