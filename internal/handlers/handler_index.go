package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"cert-inventory/internal/middlewares"
	"cert-inventory/internal/presentation"
	"cert-inventory/internal/utils"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var columnLabels = map[presentation.Column]string{
	presentation.ColumnSubject: "Description",
	presentation.ColumnIssuer:  "Issuer",
	presentation.ColumnStatus:  "Status",
	presentation.ColumnDays:    "Days to expire",
	presentation.ColumnExpires: "Expires",
}

type headerLink struct {
	Label string
	Href  string
	Arrow string
}

type indexPage struct {
	CollectedAt string
	WarnDays    int
	Counts      StatusCounts
	Headers     []headerLink
	Rows        []presentation.Row
}

func buildHeaders(active presentation.Column, order string) []headerLink {
	headers := make([]headerLink, 0, len(presentation.Columns))

	for _, col := range presentation.Columns {
		next, arrow := orderAsc, ""
		if col == active {
			if order == orderAsc {
				next, arrow = orderDesc, "▲"
			} else {
				arrow = "▼"
			}
		}

		q := url.Values{}
		q.Set("sort", string(col))
		q.Set("order", next)

		headers = append(headers, headerLink{
			Label: columnLabels[col],
			Href:  "/?" + q.Encode(),
			Arrow: arrow,
		})
	}

	return headers
}

// GetIndexGET renders the certificate list as an HTML page. Column headers toggle the sort.
func GetIndexGET(ctx *middlewares.AppContext) {
	snapshot, rows, col, order, ok := loadRows(ctx)
	if !ok {
		return
	}

	page := indexPage{
		CollectedAt: utils.FormatTimestamp(snapshot.CollectedAt),
		WarnDays:    ctx.Config.Inventory.WarnDays,
		Counts:      countTiers(rows),
		Headers:     buildHeaders(col, order),
		Rows:        rows,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		ctx.Logger.Error("failed to render index", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	ctx.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	ctx.Response.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(ctx.Response); err != nil {
		ctx.Logger.Error("failed to write index", "error", err)
	}
}
