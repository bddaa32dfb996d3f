package receiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cert-inventory/internal/metrics"
	"cert-inventory/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ReportRecord is the table row of an uploaded report. ID doubles as the sequence number.
// ReportID comes from the client and may repeat when an agent re-sends a report.
type ReportRecord struct {
	ID         uint      `gorm:"primaryKey"`
	ReportID   string    `gorm:"index;not null"`
	RemoteAddr string    `gorm:"index"`
	ReceivedAt time.Time `gorm:"not null"`
	Body       []byte    `gorm:"not null"`
	CreatedAt  time.Time
}

func (ReportRecord) TableName() string {
	return "uploaded_reports"
}

type SQLiteSink struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSQLiteSink(path string, logger *slog.Logger) (*SQLiteSink, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	return NewSQLiteSinkFromDB(db, logger)
}

func NewSQLiteSinkFromDB(db *gorm.DB, logger *slog.Logger) (*SQLiteSink, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	if err := db.AutoMigrate(&ReportRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate uploaded_reports table: %w", err)
	}

	return &SQLiteSink{
		db:     db,
		logger: logger,
	}, nil
}

func (s *SQLiteSink) Name() string {
	return metrics.SinkTypeSQLite
}

func (s *SQLiteSink) Store(ctx context.Context, report *models.UploadedReport) error {
	if len(report.Body) == 0 {
		return ErrEmptyReport
	}

	record := ReportRecord{
		ReportID:   report.ID,
		RemoteAddr: report.RemoteAddr,
		ReceivedAt: report.ReceivedAt,
		Body:       report.Body,
	}

	if result := s.db.WithContext(ctx).Create(&record); result.Error != nil {
		return fmt.Errorf("failed to store report: %w", result.Error)
	}

	report.Sequence = int(record.ID)
	s.logger.Debug("report stored in sqlite", "sequence", record.ID, "bytes", len(report.Body))

	return nil
}

// Get returns a stored report by sequence number.
func (s *SQLiteSink) Get(ctx context.Context, sequence int) (*models.UploadedReport, error) {
	var record ReportRecord
	result := s.db.WithContext(ctx).First(&record, sequence)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report %d not found", sequence)
		}
		return nil, fmt.Errorf("failed to query report: %w", result.Error)
	}

	return &models.UploadedReport{
		ID:         record.ReportID,
		Sequence:   int(record.ID),
		RemoteAddr: record.RemoteAddr,
		ReceivedAt: record.ReceivedAt,
		Body:       record.Body,
	}, nil
}

func (s *SQLiteSink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
