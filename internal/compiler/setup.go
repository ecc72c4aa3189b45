package compiler

import (
	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/foundation/xentpl"
	"github.com/msto63/xentpl/internal/templatecache"
	"github.com/msto63/xentpl/pkg/core/config"
)

// Open builds a Service from configuration. The SQLite store is opened only
// when withStore is set and the cache is enabled.
func Open(cfg *config.Config, logger *xtlog.Logger, withStore bool) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = xtlog.GetDefault()
	}

	compiler, err := xentpl.New(xentpl.Options{
		Logger:         logger,
		MaxStackDepth:  cfg.Compiler.MaxStackDepth,
		MaxInputLength: cfg.Compiler.MaxInputLength,
	})
	if err != nil {
		return nil, err
	}

	svcCfg := Config{
		Compiler:       compiler,
		Logger:         logger,
		MemoryTTL:      cfg.Cache.MemoryTTL.Duration,
		MemoryMaxItems: cfg.Cache.MemoryMaxItems,
		DisableCache:   !cfg.Cache.Enabled,
	}

	if withStore && cfg.Cache.Enabled {
		store, err := templatecache.NewSQLiteStore(templatecache.SQLiteConfig{Path: cfg.Cache.Path})
		if err != nil {
			return nil, err
		}
		svcCfg.Store = store
		logger.Debug("template cache opened", xtlog.Fields{"path": cfg.Cache.Path})
	}

	return NewService(svcCfg)
}
