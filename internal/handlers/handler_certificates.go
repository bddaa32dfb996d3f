package handlers

import (
	"errors"
	"net/http"

	"cert-inventory/internal/data"
	"cert-inventory/internal/middlewares"
	"cert-inventory/internal/models"
	"cert-inventory/internal/presentation"
)

// loadRows returns the current snapshot rendered as rows sorted by the request's sort and
// order parameters. It writes the error response itself and returns ok=false on failure.
func loadRows(ctx *middlewares.AppContext) (snapshot *models.Snapshot, rows []presentation.Row, col presentation.Column, order string, ok bool) {
	query := ctx.Request.URL.Query()

	col, order, err := parseSortParams(query.Get("sort"), query.Get("order"))
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, err.Error())
		return nil, nil, "", "", false
	}

	snapshot, err = ctx.Snapshots.Latest(ctx.Context)
	if err != nil {
		if errors.Is(err, data.ErrNoSnapshot) {
			ctx.SetJSONError(http.StatusServiceUnavailable, "inventory not collected yet")
		} else {
			ctx.Logger.Error("failed to load inventory snapshot", "error", err)
			ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return nil, nil, "", "", false
	}

	rows = presentation.BuildRows(snapshot.Records, ctx.Config.Inventory.WarnDays)
	rows = presentation.SortRows(rows, col, order == orderAsc)

	return snapshot, rows, col, order, true
}

func GetCertificatesGET(ctx *middlewares.AppContext) {
	snapshot, rows, col, order, ok := loadRows(ctx)
	if !ok {
		return
	}

	ctx.WriteJSON(http.StatusOK, CertificatesResponse{
		SnapshotID:  snapshot.ID,
		CollectedAt: snapshot.CollectedAt,
		WarnDays:    ctx.Config.Inventory.WarnDays,
		Sort:        string(col),
		Order:       order,
		Counts:      countTiers(rows),
		Rows:        rows,
	})
}

// GetReportGET serves the plain text report of the current snapshot.
func GetReportGET(ctx *middlewares.AppContext) {
	snapshot, err := ctx.Snapshots.Latest(ctx.Context)
	if err != nil {
		if errors.Is(err, data.ErrNoSnapshot) {
			ctx.SetJSONError(http.StatusServiceUnavailable, "inventory not collected yet")
			return
		}
		ctx.Logger.Error("failed to load inventory snapshot", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	ctx.Response.Header().Set("X-Report-ID", snapshot.ID)
	ctx.WriteText(http.StatusOK, snapshot.Report)
}
