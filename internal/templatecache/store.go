// ============================================================================
// xentpl - Template Compiler Front End
// ============================================================================
//
// Package:     templatecache
// Description: Persistent store for compiled template trees
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package templatecache

import (
	"context"
	"time"

	xterror "github.com/msto63/xentpl/foundation/core/error"
)

// Entry is one compiled template. Tree holds the encoded syntax tree.
type Entry struct {
	Title           string    `json:"title"`
	StyleID         string    `json:"style_id"`
	SourceHash      string    `json:"source_hash"`
	CompilerVersion string    `json:"compiler_version"`
	Tree            []byte    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// Stats describes the contents of a store
type Stats struct {
	Entries   int64  `json:"entries"`
	Titles    int64  `json:"titles"`
	TreeBytes int64  `json:"tree_bytes"`
	Location  string `json:"location"`
}

// Store defines the interface for compiled template persistence. A missing
// entry is reported as (nil, nil).
type Store interface {
	Get(ctx context.Context, title, styleID string) (*Entry, error)
	Put(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, title, styleID string) error
	Purge(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

func validateEntry(entry *Entry) error {
	if entry == nil || entry.Title == "" {
		return xterror.New("template title is required").
			WithCode(xterror.CodeInvalidInput).
			WithOperation("templatecache.Put")
	}
	if entry.SourceHash == "" || entry.CompilerVersion == "" || len(entry.Tree) == 0 {
		return xterror.New("source hash, compiler version and tree are required").
			WithCode(xterror.CodeInvalidInput).
			WithOperation("templatecache.Put").
			WithDetail("title", entry.Title)
	}
	return nil
}

func dbError(err error, message, operation string) error {
	return xterror.Wrap(err, message).
		WithCode(xterror.CodeDatabaseError).
		WithOperation(operation)
}
