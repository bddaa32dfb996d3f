package presentation

import (
	"testing"
	"time"

	"cert-inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func rec(subject, issuer string, days int) models.CertificateRecord {
	return models.CertificateRecord{
		Subject:          subject,
		Issuer:           issuer,
		NotAfter:         base.AddDate(0, 0, days),
		DaysToExpiration: days,
	}
}

func TestBuildRows(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		wantStatus string
		wantLabel  string
		wantTier   models.ExpirationStatus
	}{
		{"long expired", -400, "Expired", "Expired", models.StatusExpired},
		{"just expired", -1, "Expired", "Expired", models.StatusExpired},
		{"expires today", 0, "Expiring", "0", models.StatusExpiring},
		{"within warning", 45, "Expiring", "45", models.StatusExpiring},
		{"at threshold", 120, "Expiring", "120", models.StatusExpiring},
		{"past threshold", 121, "Active", "121", models.StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRows([]models.CertificateRecord{rec("web", "Corp", tt.days)}, models.DefaultWarnDays)

			require.Len(t, rows, 1)
			assert.Equal(t, tt.wantStatus, rows[0].Status)
			assert.Equal(t, tt.wantLabel, rows[0].DaysLabel)
			assert.Equal(t, tt.wantTier, rows[0].Tier)
			assert.Equal(t, tt.days, rows[0].Days)
			assert.NotEmpty(t, rows[0].Expires)
		})
	}
}

func TestBuildRows_CustomThresholdAndOrder(t *testing.T) {
	rows := BuildRows([]models.CertificateRecord{
		rec("b", "Corp", 30),
		rec("a", "Corp", 10),
	}, 15)

	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Subject)
	assert.Equal(t, "Active", rows[0].Status)
	assert.Equal(t, "Expiring", rows[1].Status)
}

func TestBuildRows_Empty(t *testing.T) {
	rows := BuildRows(nil, models.DefaultWarnDays)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestParseColumn(t *testing.T) {
	col, err := ParseColumn("")
	require.NoError(t, err)
	assert.Equal(t, ColumnDays, col)

	col, err = ParseColumn("Issuer")
	require.NoError(t, err)
	assert.Equal(t, ColumnIssuer, col)

	_, err = ParseColumn("serial")
	assert.ErrorContains(t, err, "unknown column")
}

func subjects(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Subject
	}
	return out
}

func TestSortRows(t *testing.T) {
	rows := BuildRows([]models.CertificateRecord{
		rec("delta", "Zeta CA", 200),
		rec("alpha", "Beta CA", -3),
		rec("charlie", "Alpha CA", 60),
		rec("bravo", "Beta CA", 60),
	}, models.DefaultWarnDays)

	tests := []struct {
		name      string
		column    Column
		ascending bool
		want      []string
	}{
		{"days ascending", ColumnDays, true, []string{"alpha", "charlie", "bravo", "delta"}},
		{"days descending", ColumnDays, false, []string{"delta", "charlie", "bravo", "alpha"}},
		{"subject ascending", ColumnSubject, true, []string{"alpha", "bravo", "charlie", "delta"}},
		{"issuer ascending keeps ties stable", ColumnIssuer, true, []string{"charlie", "alpha", "bravo", "delta"}},
		{"status by severity", ColumnStatus, true, []string{"alpha", "charlie", "bravo", "delta"}},
		{"status descending", ColumnStatus, false, []string{"delta", "charlie", "bravo", "alpha"}},
		{"expires ascending", ColumnExpires, true, []string{"alpha", "charlie", "bravo", "delta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subjects(SortRows(rows, tt.column, tt.ascending)))
		})
	}

	assert.Equal(t, []string{"delta", "alpha", "charlie", "bravo"}, subjects(rows))
}
