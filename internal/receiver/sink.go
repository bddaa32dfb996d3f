// Package receiver stores inventory reports uploaded by remote agents.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cert-inventory/internal/config"
	"cert-inventory/internal/metrics"
	"cert-inventory/internal/models"
)

//go:generate mockgen -source=sink.go -destination=../mocks/sink.go -package=mocks

var (
	ErrEmptyReport       = errors.New("report body is empty")
	ErrSequenceExhausted = errors.New("no free report sequence number")
)

// Sink persists uploaded reports. Store assigns report.Sequence.
type Sink interface {
	Name() string
	Store(ctx context.Context, report *models.UploadedReport) error
	Close() error
}

// NewSink returns the sink selected by cfg.Sink.
func NewSink(cfg *config.ReceiverConfig, logger *slog.Logger) (Sink, error) {
	switch cfg.Sink {
	case metrics.SinkTypeRedis:
		return NewRedisSink(cfg.Redis, logger), nil
	case metrics.SinkTypeSQLite:
		return NewSQLiteSink(cfg.SQLite.Path, logger)
	case metrics.SinkTypeFile:
		return NewFileSink(cfg.File.Directory, logger), nil
	default:
		return nil, fmt.Errorf("unknown receiver sink %q", cfg.Sink)
	}
}
