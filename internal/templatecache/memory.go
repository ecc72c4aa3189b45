// ============================================================================
// xentpl - Template Compiler Front End
// ============================================================================
//
// Package:     templatecache
// Description: In-memory implementation of the template store
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package templatecache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation for tests and for runs
// without a database
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[memoryKey]*Entry
}

type memoryKey struct {
	title, styleID string
}

// NewMemoryStore creates a new in-memory template store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[memoryKey]*Entry)}
}

// Get retrieves a copy of the compiled template for title and style
func (s *MemoryStore) Get(ctx context.Context, title, styleID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[memoryKey{title, styleID}]
	if !ok {
		return nil, nil
	}
	return cloneEntry(entry), nil
}

// Put inserts or replaces a compiled template
func (s *MemoryStore) Put(ctx context.Context, entry *Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries[memoryKey{entry.Title, entry.StyleID}] = cloneEntry(entry)
	return nil
}

// Delete removes one compiled template
func (s *MemoryStore) Delete(ctx context.Context, title, styleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, memoryKey{title, styleID})
	return nil
}

// Purge removes all compiled templates
func (s *MemoryStore) Purge(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.entries))
	s.entries = make(map[memoryKey]*Entry)
	return n, nil
}

// Stats returns store statistics
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{Location: "memory"}
	titles := make(map[string]struct{})
	for key, entry := range s.entries {
		stats.Entries++
		stats.TreeBytes += int64(len(entry.Tree))
		titles[key.title] = struct{}{}
	}
	stats.Titles = int64(len(titles))
	return stats, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

func cloneEntry(e *Entry) *Entry {
	c := *e
	c.Tree = append([]byte(nil), e.Tree...)
	return &c
}
