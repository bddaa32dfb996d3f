package receiver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cert-inventory/internal/metrics"
	"cert-inventory/internal/models"
)

const (
	reportFilePrefix = "cert_"
	reportFileExt    = ".json"

	// MaxSequence is the highest file number the file sink hands out.
	MaxSequence = 9999
)

// FileSink writes every report to cert_<n>.json, n being the lowest unused number.
type FileSink struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

func NewFileSink(dir string, logger *slog.Logger) *FileSink {
	return &FileSink{
		dir:    dir,
		logger: logger,
	}
}

func (s *FileSink) Name() string {
	return metrics.SinkTypeFile
}

func ReportFileName(n int) string {
	return fmt.Sprintf("%s%d%s", reportFilePrefix, n, reportFileExt)
}

func (s *FileSink) Store(_ context.Context, report *models.UploadedReport) error {
	if len(report.Body) == 0 {
		return ErrEmptyReport
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	for n := 1; n <= MaxSequence; n++ {
		path := filepath.Join(s.dir, ReportFileName(n))

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}

		if _, err := f.Write(report.Body); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}

		report.Sequence = n
		s.logger.Debug("report written", "path", path, "bytes", len(report.Body))
		return nil
	}

	return ErrSequenceExhausted
}

func (s *FileSink) Close() error {
	return nil
}
