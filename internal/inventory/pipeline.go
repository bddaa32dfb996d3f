package inventory

import (
	"log/slog"
	"time"

	"cert-inventory/internal/certstore"
	"cert-inventory/internal/metrics"
	"cert-inventory/internal/models"

	"github.com/google/uuid"
)

// Pipeline runs Collect, Reduce and Format over a fixed set of locations.
type Pipeline struct {
	collector *Collector
	locations []certstore.Location
	warnDays  int
	now       func() time.Time
	logger    *slog.Logger
}

func NewPipeline(collector *Collector, locations []certstore.Location, warnDays int, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		collector: collector,
		locations: append([]certstore.Location(nil), locations...),
		warnDays:  warnDays,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the clock used for the collection time of each run.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run rebuilds the inventory from the live stores.
func (p *Pipeline) Run() *models.Snapshot {
	start := time.Now()
	now := p.now()

	collected := p.collector.CollectAt(p.locations, now)
	records := Reduce(collected)
	report := Format(records)

	metrics.DuplicatesCollapsed.Add(float64(len(collected) - len(records)))
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())

	snapshot := &models.Snapshot{
		ID:          uuid.NewString(),
		CollectedAt: now,
		Records:     records,
		Report:      report,
	}

	p.recordStatusGauges(snapshot)

	active, expired := snapshot.Counts()
	p.logger.Info("certificate inventory collected",
		"snapshot", snapshot.ID,
		"locations", len(p.locations),
		"collected", len(collected),
		"active", active,
		"expired", expired)

	return snapshot
}

func (p *Pipeline) recordStatusGauges(snapshot *models.Snapshot) {
	counts := map[models.ExpirationStatus]int{
		models.StatusExpired:  0,
		models.StatusExpiring: 0,
		models.StatusActive:   0,
	}
	for _, rec := range snapshot.Records {
		counts[rec.Status(p.warnDays)]++
	}
	for status, n := range counts {
		metrics.InventoryRecords.WithLabelValues(string(status)).Set(float64(n))
	}
}
