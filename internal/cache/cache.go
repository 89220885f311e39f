// Package cache is the enrichment cache seen by the orchestrator. Storage
// failures never escape it: a failed read is a miss, a failed write is logged.
package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Backend is the slice of store.Store the cache needs.
type Backend interface {
	GetEnrichment(ctx context.Context, stableID string) (*model.EnrichmentResult, error)
	PutEnrichment(ctx context.Context, result *model.EnrichmentResult) error
}

// DefaultTimeout bounds each cache operation when none is configured.
const DefaultTimeout = 5 * time.Second

// Cache wraps a Backend with per-operation timeouts.
type Cache struct {
	backend Backend
	timeout time.Duration
}

// New returns a Cache over backend. A nil backend yields a cache that
// always misses and drops writes.
func New(backend Backend, timeout time.Duration) *Cache {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Cache{backend: backend, timeout: timeout}
}

// Get returns the latest stored result for stableID, or nil.
func (c *Cache) Get(ctx context.Context, stableID string) *model.EnrichmentResult {
	if c == nil || c.backend == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	r, err := c.backend.GetEnrichment(ctx, stableID)
	if err != nil {
		zap.L().Warn("cache: read failed, treating as miss",
			zap.String("stable_id", stableID),
			zap.Error(err),
		)
		return nil
	}
	return r
}

// Put appends r to the cache. Failures are logged and dropped.
func (c *Cache) Put(ctx context.Context, r *model.EnrichmentResult) {
	if c == nil || c.backend == nil || r == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.PutEnrichment(ctx, r); err != nil {
		zap.L().Warn("cache: write failed",
			zap.String("stable_id", r.StableID),
			zap.Error(err),
		)
	}
}
