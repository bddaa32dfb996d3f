package data

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cert-inventory/internal/models"
)

var ErrNoSnapshot = errors.New("no inventory snapshot published yet")

// SnapshotCache holds the inventory snapshot served to readers. Published snapshots are
// never mutated afterwards.
type SnapshotCache interface {
	Latest(ctx context.Context) (*models.Snapshot, error)
	Publish(ctx context.Context, snapshot *models.Snapshot)
	PublishedAt(ctx context.Context) time.Time
}

type MemCache struct {
	snapshot    *models.Snapshot
	publishedAt time.Time
	mutex       sync.RWMutex
	logger      *slog.Logger
}

// NewMemCache returns an empty in-memory SnapshotCache.
func NewMemCache(logger *slog.Logger) *MemCache {
	return &MemCache{
		logger: logger,
	}
}

// Latest returns the most recently published snapshot.
func (c *MemCache) Latest(_ context.Context) (*models.Snapshot, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.snapshot == nil {
		return nil, ErrNoSnapshot
	}

	return c.snapshot, nil
}

// Publish replaces the current snapshot. A nil snapshot is ignored.
func (c *MemCache) Publish(_ context.Context, snapshot *models.Snapshot) {
	if snapshot == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.snapshot = snapshot
	c.publishedAt = time.Now()
	c.logger.Debug("inventory snapshot published", "snapshot", snapshot.ID, "records", len(snapshot.Records))
}

// PublishedAt returns when the current snapshot was published, or the zero time.
func (c *MemCache) PublishedAt(_ context.Context) time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.publishedAt
}
