package receiver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cert-inventory/internal/config"
	"cert-inventory/internal/metrics"
	"cert-inventory/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSinkClient is the subset of *redis.Client the sink needs.
type RedisSinkClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type RedisSink struct {
	client RedisSinkClient
	prefix string
	logger *slog.Logger
}

type storedReport struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"sequence"`
	RemoteAddr string    `json:"remote_addr"`
	ReceivedAt time.Time `json:"received_at"`

	// Base64 in JSON, so reports that are not valid UTF-8 survive unchanged.
	Body []byte `json:"body"`
}

// NewRedisSink connects lazily; the first Store surfaces connection errors.
func NewRedisSink(cfg *config.RedisConfig, logger *slog.Logger) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.Index,
		MinIdleConns: 2,
	})

	collector := redisprometheus.NewCollector(metrics.Namespace, "receiver", client)
	if err := prometheus.Register(collector); err != nil {
		logger.Debug("failed to register redis receiver collector: already registered", "error", err)
	}

	return &RedisSink{
		client: client,
		prefix: cfg.KeyPrefix,
		logger: logger,
	}
}

func (s *RedisSink) Name() string {
	return metrics.SinkTypeRedis
}

func (s *RedisSink) sequenceKey() string {
	return fmt.Sprintf("%s:report:seq", s.prefix)
}

func (s *RedisSink) reportKey(seq int64) string {
	return fmt.Sprintf("%s:report:%d", s.prefix, seq)
}

func (s *RedisSink) Store(ctx context.Context, report *models.UploadedReport) error {
	if len(report.Body) == 0 {
		return ErrEmptyReport
	}

	seq, err := s.client.Incr(ctx, s.sequenceKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate report sequence: %w", err)
	}

	payload, err := json.Marshal(storedReport{
		ID:         report.ID,
		Sequence:   int(seq),
		RemoteAddr: report.RemoteAddr,
		ReceivedAt: report.ReceivedAt,
		Body:       report.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := s.client.Set(ctx, s.reportKey(seq), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	report.Sequence = int(seq)
	s.logger.Debug("report stored in redis", "key", s.reportKey(seq), "bytes", len(report.Body))

	return nil
}

// Ping checks connectivity at startup.
func (s *RedisSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
