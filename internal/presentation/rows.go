// Package presentation turns an inventory into the sortable, color-tiered list shown to operators.
package presentation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"cert-inventory/internal/models"
	"cert-inventory/internal/utils"
)

const expiredLabel = "Expired"

// Row is one line of the certificate list.
type Row struct {
	Subject   string                  `json:"subject"`
	Issuer    string                  `json:"issuer"`
	Status    string                  `json:"status"`
	DaysLabel string                  `json:"days_label"`
	Days      int                     `json:"days"`
	Expires   string                  `json:"expires"`
	NotAfter  time.Time               `json:"not_after"`
	Tier      models.ExpirationStatus `json:"tier"`
}

var statusLabels = map[models.ExpirationStatus]string{
	models.StatusExpired:  "Expired",
	models.StatusExpiring: "Expiring",
	models.StatusActive:   "Active",
}

// BuildRows classifies records against warnDays, keeping their order.
func BuildRows(records []models.CertificateRecord, warnDays int) []Row {
	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		tier := rec.Status(warnDays)

		daysLabel := strconv.Itoa(rec.DaysToExpiration)
		if tier == models.StatusExpired {
			daysLabel = expiredLabel
		}

		rows = append(rows, Row{
			Subject:   rec.Subject,
			Issuer:    rec.Issuer,
			Status:    statusLabels[tier],
			DaysLabel: daysLabel,
			Days:      rec.DaysToExpiration,
			Expires:   utils.FormatTimestamp(rec.NotAfter),
			NotAfter:  rec.NotAfter,
			Tier:      tier,
		})
	}

	return rows
}

type Column string

const (
	ColumnSubject Column = "subject"
	ColumnIssuer  Column = "issuer"
	ColumnStatus  Column = "status"
	ColumnDays    Column = "days"
	ColumnExpires Column = "expires"
)

var Columns = []Column{ColumnSubject, ColumnIssuer, ColumnStatus, ColumnDays, ColumnExpires}

// ParseColumn accepts a column name in any letter case. The empty string selects ColumnDays.
func ParseColumn(s string) (Column, error) {
	if s == "" {
		return ColumnDays, nil
	}

	col := Column(strings.ToLower(s))
	for _, c := range Columns {
		if c == col {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown column %q", s)
}

var tierRank = map[models.ExpirationStatus]int{
	models.StatusExpired:  0,
	models.StatusExpiring: 1,
	models.StatusActive:   2,
}

// SortRows returns a copy of rows stably sorted by col. rows is not modified.
func SortRows(rows []Row, col Column, ascending bool) []Row {
	out := append([]Row(nil), rows...)

	less := func(a, b Row) bool {
		switch col {
		case ColumnSubject:
			return a.Subject < b.Subject
		case ColumnIssuer:
			return a.Issuer < b.Issuer
		case ColumnStatus:
			return tierRank[a.Tier] < tierRank[b.Tier]
		case ColumnExpires:
			return a.NotAfter.Before(b.NotAfter)
		default:
			return a.Days < b.Days
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})

	return out
}
