package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"cert-inventory/internal/config"
	"cert-inventory/internal/models"
	"cert-inventory/internal/presentation"
	"cert-inventory/internal/transport"
)

var ErrSendFailed = errors.New("report delivery failed")

const (
	OutputTable  = "table"
	OutputReport = "report"
)

type ScanOptions struct {
	Out io.Writer

	// Output is OutputTable or OutputReport.
	Output string
	Color  bool

	// FailOnSendError turns a transport failure into a returned error.
	FailOnSendError bool

	// HTTPClient overrides the transport client, mostly for tests.
	HTTPClient *http.Client
}

// Scan runs the inventory once, sends the report when a destination is configured and writes
// the result to opts.Out. The snapshot is returned even when delivery fails.
func Scan(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ScanOptions) (*models.Snapshot, error) {
	pipeline, err := NewPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("loading certificates")
	snapshot := pipeline.Run()

	sendErr := sendReport(ctx, cfg, logger, snapshot, opts.HTTPClient)

	switch opts.Output {
	case "", OutputTable:
		rows := presentation.BuildRows(snapshot.Records, cfg.Inventory.WarnDays)
		err = presentation.RenderTable(opts.Out, rows, opts.Color)
	case OutputReport:
		_, err = io.WriteString(opts.Out, snapshot.Report)
	default:
		err = fmt.Errorf("unknown output %q, options are %s or %s", opts.Output, OutputTable, OutputReport)
	}
	if err != nil {
		return snapshot, err
	}

	if sendErr != nil && opts.FailOnSendError {
		return snapshot, fmt.Errorf("%w: %w", ErrSendFailed, sendErr)
	}

	return snapshot, nil
}

func sendReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, snapshot *models.Snapshot, httpClient *http.Client) error {
	if !cfg.TransportEnabled() {
		logger.Debug("no transport host configured, report not sent")
		return nil
	}

	var opts []transport.Option
	if cfg.Transport.Token != "" {
		opts = append(opts, transport.WithToken(cfg.Transport.Token))
	}
	if httpClient != nil {
		opts = append(opts, transport.WithHTTPClient(httpClient))
	}

	client := transport.NewClient(cfg.Transport.Host, cfg.Transport.Path, cfg.Transport.Timeout, logger, opts...)

	logger.Info("sending report to server", "url", client.URL())

	if err := client.Send(ctx, snapshot.Report); err != nil {
		logger.Error("failed to send report", "url", client.URL(), "error", err)
		return err
	}

	return nil
}
