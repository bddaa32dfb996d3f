package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cert-inventory/internal/models"
)

// SnapshotRunner produces a fresh inventory snapshot.
type SnapshotRunner interface {
	Run() *models.Snapshot
}

// SnapshotPublisher makes a snapshot visible to readers.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snapshot *models.Snapshot)
}

// InventoryRefreshJob re-runs the inventory pipeline on an interval and publishes each result.
type InventoryRefreshJob struct {
	runner    SnapshotRunner
	publisher SnapshotPublisher
	interval  time.Duration
	logger    *slog.Logger
}

func NewInventoryRefreshJob(runner SnapshotRunner, publisher SnapshotPublisher, interval time.Duration, logger *slog.Logger) *InventoryRefreshJob {
	return &InventoryRefreshJob{
		runner:    runner,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

func (j *InventoryRefreshJob) Name() string {
	return "inventory_refresh"
}

func (j *InventoryRefreshJob) Interval() time.Duration {
	return j.interval
}

// Run waits one interval before the first refresh; the caller publishes the initial snapshot.
func (j *InventoryRefreshJob) Run(ctx context.Context) error {
	if j.interval <= 0 {
		return fmt.Errorf("non-positive ticker interval: %s", j.interval)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("Inventory refresh canceled")
			return ctx.Err()
		case <-ticker.C:
			snapshot := j.runner.Run()
			j.publisher.Publish(ctx, snapshot)
			j.logger.Debug("Inventory refreshed", "snapshot", snapshot.ID, "records", len(snapshot.Records))
		}
	}
}
