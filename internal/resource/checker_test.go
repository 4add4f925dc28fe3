package resource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/casewright/casewright/internal/model"
)

func init() {
	// Disable retry backoff in tests
	checkSleepFunc = func(time.Duration) {}
}

func testChecker() *Checker {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Concurrency.LinkCheckWorkers = 4
	return NewChecker(cfg)
}

func TestCheckAll_AccessibleLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
		case "/dataset":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte("<html><head><title>Telco Churn Dataset</title></head><body></body></html>"))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	results := testChecker().CheckAll(context.Background(), []string{server.URL + "/dataset"})
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if !results[0].IsAccessible {
		t.Errorf("Expected accessible link: %+v", results[0])
	}
	if results[0].StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", results[0].StatusCode)
	}
	if results[0].PageTitle != "Telco Churn Dataset" {
		t.Errorf("Expected page title, got %q", results[0].PageTitle)
	}
}

func TestCheckAll_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	results := testChecker().CheckAll(context.Background(), []string{server.URL + "/gone"})
	if results[0].IsAccessible {
		t.Error("Expected inaccessible link")
	}
	if results[0].StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", results[0].StatusCode)
	}
}

func TestCheckAll_RetriesServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
			return
		}
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	results := testChecker().CheckAll(context.Background(), []string{server.URL + "/flaky"})
	if !results[0].IsAccessible {
		t.Errorf("Expected success after retries: %+v", results[0])
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestCheckAll_RobotsDisallowed(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private"))
			return
		}
		requested = true
	}))
	defer server.Close()

	results := testChecker().CheckAll(context.Background(), []string{server.URL + "/private/data"})
	if results[0].IsAccessible {
		t.Error("Expected disallowed link to be inaccessible")
	}
	if results[0].Error != "disallowed by robots.txt" {
		t.Errorf("Unexpected error: %q", results[0].Error)
	}
	if requested {
		t.Error("Disallowed path must not be fetched")
	}
}

func TestCheckAll_HeadRejectedFallsBackToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
			return
		}
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Repo</title></head></html>"))
	}))
	defer server.Close()

	results := testChecker().CheckAll(context.Background(), []string{server.URL + "/repo"})
	if !results[0].IsAccessible {
		t.Errorf("Expected GET fallback to succeed: %+v", results[0])
	}
	if results[0].PageTitle != "Repo" {
		t.Errorf("Expected page title from GET body, got %q", results[0].PageTitle)
	}
}

func TestCheckAll_PreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
			return
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	urls := []string{server.URL + "/a", server.URL + "/missing", server.URL + "/b"}
	results := testChecker().CheckAll(context.Background(), urls)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("Result %d out of order: %s", i, r.URL)
		}
	}
	if results[1].IsAccessible || !results[0].IsAccessible || !results[2].IsAccessible {
		t.Errorf("Unexpected accessibility pattern: %+v", results)
	}
}

func TestCheckAll_Empty(t *testing.T) {
	results := testChecker().CheckAll(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestExtractTitle_NoTitle(t *testing.T) {
	if got := extractTitle(strings.NewReader("<html><body>plain</body></html>")); got != "" {
		t.Errorf("Expected empty title, got %q", got)
	}
}
