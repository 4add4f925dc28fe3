package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CompletionKey generates a cache key for an LLM completion. Keys are
// namespaced per provider and model so a model switch never serves stale
// completions.
func CompletionKey(provider, model, prompt string) string {
	return key("llm", provider+"\x00"+model+"\x00"+prompt)
}

// SearchKey generates a cache key for an external search query
func SearchKey(engine, query string) string {
	return key("search", engine+"\x00"+query)
}

func key(kind, payload string) string {
	hash := sha256.Sum256([]byte(payload))
	return "casewright:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
