// ============================================================================
// xentpl - Template Compiler Front End
// ============================================================================
//
// Package:     compiler
// Description: Compile service with an in-memory and a persistent tier for
//              compiled template trees
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	xterror "github.com/msto63/xentpl/foundation/core/error"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/foundation/xentpl"
	"github.com/msto63/xentpl/foundation/xentpl/ast"
	"github.com/msto63/xentpl/internal/templatecache"
	"github.com/msto63/xentpl/pkg/core/cache"
	"github.com/msto63/xentpl/pkg/core/version"
)

// CacheSource tells where a compiled tree came from
type CacheSource int

const (
	CacheNone   CacheSource = iota // freshly compiled
	CacheMemory                    // in-memory tier
	CacheStore                     // persistent store
)

// String returns the name of the source
func (c CacheSource) String() string {
	switch c {
	case CacheMemory:
		return "memory"
	case CacheStore:
		return "store"
	default:
		return "none"
	}
}

// Request is one compile request
type Request struct {
	Title   string
	StyleID string
	Source  string
}

// Result is the outcome of a successful compile
type Result struct {
	Tree       []ast.Node
	Cached     CacheSource
	CompileID  string
	SourceHash string
}

// Stats combines the statistics of both tiers
type Stats struct {
	Memory cache.Stats
	Store  *templatecache.Stats // nil without a store
}

// Config holds service dependencies
type Config struct {
	Compiler       *xentpl.Compiler    // created with default options when nil
	Store          templatecache.Store // optional persistent tier
	Logger         *xtlog.Logger
	MemoryTTL      time.Duration
	MemoryMaxItems int
	DisableCache   bool
}

type memoryEntry struct {
	sourceHash string
	tree       []ast.Node
}

// Service compiles templates and caches the resulting trees. Trees are
// shared between callers and must not be modified.
type Service struct {
	compiler    *xentpl.Compiler
	store       templatecache.Store
	memory      *cache.Cache[memoryEntry]
	logger      *xtlog.Logger
	fingerprint string
	disabled    bool
}

// NewService creates a new compile service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = xtlog.GetDefault()
	}

	compiler := cfg.Compiler
	if compiler == nil {
		var err error
		compiler, err = xentpl.New(xentpl.Options{Logger: logger})
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		compiler: compiler,
		store:    cfg.Store,
		memory: cache.New[memoryEntry](cache.Config{
			MaxItems: cfg.MemoryMaxItems,
			TTL:      cfg.MemoryTTL,
		}),
		logger:      logger.WithField("component", "compiler.service"),
		fingerprint: version.CompilerFingerprint(ast.EncodingVersion),
		disabled:    cfg.DisableCache,
	}, nil
}

// HashSource returns the hex sha256 of a template source
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Compile returns the tree of req.Source, from a cache tier when an entry
// for the same title, style, source and compiler version exists
func (s *Service) Compile(ctx context.Context, req Request) (*Result, error) {
	if req.Title == "" {
		return nil, xterror.New("template title is required").
			WithCode(xterror.CodeInvalidInput).
			WithOperation("compiler.Compile")
	}

	result := &Result{
		CompileID:  uuid.New().String(),
		SourceHash: HashSource(req.Source),
	}
	logger := s.logger.WithCorrelationID(result.CompileID).WithFields(xtlog.Fields{
		"title":    req.Title,
		"style_id": req.StyleID,
	})
	key := cache.Key("tree", req.Title, req.StyleID)

	if !s.disabled {
		if entry, ok := s.memory.Get(key); ok && entry.sourceHash == result.SourceHash {
			logger.Debug("memory cache hit")
			result.Tree = entry.tree
			result.Cached = CacheMemory
			return result, nil
		}

		if tree, ok := s.loadFromStore(ctx, logger, req, result.SourceHash); ok {
			s.memory.Set(key, memoryEntry{sourceHash: result.SourceHash, tree: tree})
			result.Tree = tree
			result.Cached = CacheStore
			return result, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := s.compiler.Compile(req.Title, req.Source)
	if err != nil {
		return nil, err
	}
	result.Tree = tree

	if !s.disabled {
		s.memory.Set(key, memoryEntry{sourceHash: result.SourceHash, tree: tree})
		s.saveToStore(ctx, logger, req, result.SourceHash, tree)
	}

	return result, nil
}

// loadFromStore returns the stored tree if it matches source and compiler.
// Store failures count as misses.
func (s *Service) loadFromStore(ctx context.Context, logger *xtlog.Logger, req Request, sourceHash string) ([]ast.Node, bool) {
	if s.store == nil {
		return nil, false
	}

	entry, err := s.store.Get(ctx, req.Title, req.StyleID)
	if err != nil {
		logger.LogError("template cache lookup failed", err)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}
	if entry.SourceHash != sourceHash || entry.CompilerVersion != s.fingerprint {
		logger.Debug("stale template cache entry", xtlog.Fields{"compiler_version": entry.CompilerVersion})
		return nil, false
	}

	tree, err := ast.Decode(entry.Tree)
	if err != nil {
		logger.LogError("discarding corrupt template cache entry", xterror.Wrap(err, "corrupt cache entry").
			WithCode(xterror.CodeDataCorruption).
			WithOperation("compiler.loadFromStore"))
		if err := s.store.Delete(ctx, req.Title, req.StyleID); err != nil {
			logger.LogError("template cache delete failed", err)
		}
		return nil, false
	}

	logger.Debug("template cache hit")
	return tree, true
}

// saveToStore persists a compiled tree; failures are logged only
func (s *Service) saveToStore(ctx context.Context, logger *xtlog.Logger, req Request, sourceHash string, tree []ast.Node) {
	if s.store == nil {
		return
	}

	data, err := ast.Encode(tree)
	if err != nil {
		logger.LogError("tree encoding failed", xterror.Wrap(err, "tree encoding failed").
			WithCode(xterror.CodeInternal).
			WithOperation("compiler.saveToStore"))
		return
	}

	err = s.store.Put(ctx, &templatecache.Entry{
		Title:           req.Title,
		StyleID:         req.StyleID,
		SourceHash:      sourceHash,
		CompilerVersion: s.fingerprint,
		Tree:            data,
	})
	if err != nil {
		logger.LogError("template cache store failed", err)
	}
}

// Invalidate drops the cached tree of one template from both tiers
func (s *Service) Invalidate(ctx context.Context, title, styleID string) error {
	s.memory.Delete(cache.Key("tree", title, styleID))
	if s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, title, styleID)
}

// Purge empties both tiers and returns the number of stored entries removed
func (s *Service) Purge(ctx context.Context) (int64, error) {
	s.memory.Clear()
	if s.store == nil {
		return 0, nil
	}
	return s.store.Purge(ctx)
}

// Stats returns statistics of both tiers
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Memory: s.memory.Stats()}
	if s.store != nil {
		storeStats, err := s.store.Stats(ctx)
		if err != nil {
			return nil, err
		}
		stats.Store = storeStats
	}
	return stats, nil
}

// Fingerprint returns the compiler version recorded with stored trees
func (s *Service) Fingerprint() string {
	return s.fingerprint
}

// Close releases the memory tier and closes the store
func (s *Service) Close() error {
	s.memory.Close()
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
