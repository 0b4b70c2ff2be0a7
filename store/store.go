// Package store persists computed results and caches rendered outputs so
// the command-line tools can keep a calculation history.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Record is one stored calculation: which tool ran, the input document it
// ran on, and the scalar result.
type Record struct {
	Tool      string
	Input     string
	Result    float64
	CreatedAt time.Time
}

// Store keeps a calculation history.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Cache maps input keys to rendered outputs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Key addresses a calculation by tool name and input bytes. Identical
// inputs to the same tool always produce the same key.
func Key(tool string, input []byte) string {
	h := sha256.New()
	h.Write([]byte(tool))
	h.Write([]byte{0})
	h.Write(input)
	return hex.EncodeToString(h.Sum(nil))
}

// Memory is an in-memory Store for tests and ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	recs []Record
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save appends the record, stamping CreatedAt if unset.
func (m *Memory) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.recs = append(m.recs, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (m *Memory) Recent(_ context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Record
	for i := len(m.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}

// MapCache is an in-memory Cache for tests and cache-less runs.
type MapCache struct {
	mu sync.Mutex
	m  map[string]string
}

var _ Cache = (*MapCache)(nil)

// NewMapCache returns an empty in-memory cache.
func NewMapCache() *MapCache {
	return &MapCache{m: make(map[string]string)}
}

// Get returns the cached value for key, if present.
func (c *MapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

// Set stores value under key.
func (c *MapCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}
