package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"cert-inventory/internal/metrics"
	"cert-inventory/internal/middlewares"
	"cert-inventory/internal/models"
	"cert-inventory/internal/receiver"

	"github.com/google/uuid"
)

// UploadReportPOST stores the raw request body of a report upload through the configured sink.
func UploadReportPOST(ctx *middlewares.AppContext) {
	sinkName := ctx.Sink.Name()

	body, err := io.ReadAll(http.MaxBytesReader(ctx.Response, ctx.Request.Body, ctx.Config.Receiver.MaxBody))
	if err != nil {
		metrics.ReportsReceived.WithLabelValues(sinkName, metrics.ResultFailure).Inc()

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.SetJSONError(http.StatusRequestEntityTooLarge, "report too large")
			return
		}
		ctx.Logger.Warn("failed to read uploaded report", "remote_addr", ctx.Request.RemoteAddr, "error", err)
		ctx.SetJSONError(http.StatusBadRequest, "failed to read report")
		return
	}

	reportID := ctx.Request.Header.Get("X-Report-ID")
	if _, err := uuid.Parse(reportID); err != nil {
		reportID = uuid.NewString()
	}

	report := &models.UploadedReport{
		ID:         reportID,
		RemoteAddr: middlewares.ClientIP(ctx.Request),
		ReceivedAt: time.Now().UTC(),
		Body:       body,
	}

	if err := ctx.Sink.Store(ctx.Context, report); err != nil {
		metrics.ReportsReceived.WithLabelValues(sinkName, metrics.ResultFailure).Inc()

		switch {
		case errors.Is(err, receiver.ErrEmptyReport):
			ctx.SetJSONError(http.StatusBadRequest, err.Error())
		case errors.Is(err, receiver.ErrSequenceExhausted):
			ctx.Logger.Error("report storage is full", "sink", sinkName)
			ctx.SetJSONError(http.StatusInsufficientStorage, err.Error())
		default:
			ctx.Logger.Error("failed to store uploaded report", "sink", sinkName, "error", err)
			ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	metrics.ReportsReceived.WithLabelValues(sinkName, metrics.ResultSuccess).Inc()
	ctx.Logger.Info("report received",
		"id", report.ID,
		"sequence", report.Sequence,
		"remote_addr", report.RemoteAddr,
		"bytes", len(body),
		"sink", sinkName)

	ctx.WriteJSON(http.StatusCreated, UploadResponse{
		Status:   "stored",
		ID:       report.ID,
		Sequence: report.Sequence,
	})
}
