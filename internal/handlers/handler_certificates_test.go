package handlers

import (
	"net/http"
	"testing"
	"time"

	"cert-inventory/internal/models"
	"cert-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var collectedAt = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		ID:          "5f1c7f2e-7c8e-4d8e-9d2f-2f5a1e6b9c11",
		CollectedAt: collectedAt,
		Records: []models.CertificateRecord{
			{Subject: "old.corp.example", Issuer: "Corp CA", NotAfter: collectedAt.AddDate(0, 0, -5), DaysToExpiration: -5},
			{Subject: "vpn.corp.example", Issuer: "Corp CA", NotAfter: collectedAt.AddDate(0, 0, 30), DaysToExpiration: 30},
			{Subject: "<script>alert(1)</script>", Issuer: "Acme CA", NotAfter: collectedAt.AddDate(0, 0, 400), DaysToExpiration: 400},
		},
		Report: "\n===== ACTIVE CERTIFICATES =====\n===== EXPIRED CERTIFICATES =====\n",
	}
}

func TestGetCertificatesGET(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantStatus   int
		wantSubjects []string
	}{
		{
			name:         "default order",
			url:          "/api/certificates",
			wantStatus:   http.StatusOK,
			wantSubjects: []string{"old.corp.example", "vpn.corp.example", "<script>alert(1)</script>"},
		},
		{
			name:         "days descending",
			url:          "/api/certificates?sort=days&order=desc",
			wantStatus:   http.StatusOK,
			wantSubjects: []string{"<script>alert(1)</script>", "vpn.corp.example", "old.corp.example"},
		},
		{
			name:         "issuer ascending",
			url:          "/api/certificates?sort=issuer",
			wantStatus:   http.StatusOK,
			wantSubjects: []string{"<script>alert(1)</script>", "old.corp.example", "vpn.corp.example"},
		},
		{
			name:       "unknown column",
			url:        "/api/certificates?sort=serial",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown order",
			url:        "/api/certificates?order=sideways",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContextWithURL(t, http.MethodGet, tt.url)
			tc.Publish(testSnapshot())

			tc.CallHandler(GetCertificatesGET)

			tc.AssertStatus(t, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp CertificatesResponse
			tc.DecodeJSON(t, &resp)

			subjects := make([]string, 0, len(resp.Rows))
			for _, row := range resp.Rows {
				subjects = append(subjects, row.Subject)
			}
			assert.Equal(t, tt.wantSubjects, subjects)
			assert.Equal(t, StatusCounts{Expired: 1, Expiring: 1, Active: 1, AttentionRequired: 2}, resp.Counts)
			assert.Equal(t, 120, resp.WarnDays)
			assert.Equal(t, "5f1c7f2e-7c8e-4d8e-9d2f-2f5a1e6b9c11", resp.SnapshotID)
		})
	}
}

func TestGetCertificatesGET_Rows(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/api/certificates")
	tc.Publish(testSnapshot())

	tc.CallHandler(GetCertificatesGET)

	var resp CertificatesResponse
	tc.DecodeJSON(t, &resp)
	require.Len(t, resp.Rows, 3)

	assert.Equal(t, "Expired", resp.Rows[0].Status)
	assert.Equal(t, "Expired", resp.Rows[0].DaysLabel)
	assert.Equal(t, models.StatusExpired, resp.Rows[0].Tier)
	assert.Equal(t, "Expiring", resp.Rows[1].Status)
	assert.Equal(t, "30", resp.Rows[1].DaysLabel)
	assert.Equal(t, "Active", resp.Rows[2].Status)
}

func TestGetCertificatesGET_NoSnapshot(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/api/certificates")

	tc.CallHandler(GetCertificatesGET)

	tc.AssertStatus(t, http.StatusServiceUnavailable)
	tc.AssertJSONField(t, "error", "inventory not collected yet")
}

func TestGetReportGET(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/api/report")
	snapshot := testSnapshot()
	tc.Publish(snapshot)

	tc.CallHandler(GetReportGET)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "text/plain")
	assert.Equal(t, snapshot.Report, tc.GetResponseBody())
	assert.Equal(t, snapshot.ID, tc.Response.Header().Get("X-Report-ID"))
}

func TestGetReportGET_NoSnapshot(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/api/report")

	tc.CallHandler(GetReportGET)

	tc.AssertStatus(t, http.StatusServiceUnavailable)
}

func TestGetIndexGET(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/?sort=days&order=asc")
	tc.Publish(testSnapshot())

	tc.CallHandler(GetIndexGET)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "text/html")

	body := tc.GetResponseBody()
	assert.Contains(t, body, `<tr class="expired"><td>old.corp.example</td>`)
	assert.Contains(t, body, `<tr class="expiring"><td>vpn.corp.example</td>`)
	assert.Contains(t, body, `<tr class="active"><td>&lt;script&gt;alert(1)&lt;/script&gt;</td>`)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, `href="/?order=desc&amp;sort=days"`)
	assert.Contains(t, body, `href="/?order=asc&amp;sort=subject"`)
	assert.Contains(t, body, "Expired: 1")
	assert.Contains(t, body, "Attention required: 2")
}

func TestGetIndexGET_Empty(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/")
	tc.Publish(&models.Snapshot{ID: "empty", CollectedAt: collectedAt, Records: []models.CertificateRecord{}})

	tc.CallHandler(GetIndexGET)

	tc.AssertStatus(t, http.StatusOK)
	assert.Contains(t, tc.GetResponseBody(), "No certificates found.")
}
