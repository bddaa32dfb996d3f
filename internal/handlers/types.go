package handlers

import (
	"time"

	"cert-inventory/internal/presentation"
)

// CertificatesResponse is the body of GET /api/certificates.
type CertificatesResponse struct {
	SnapshotID  string             `json:"snapshot_id"`
	CollectedAt time.Time          `json:"collected_at"`
	WarnDays    int                `json:"warn_days"`
	Sort        string             `json:"sort"`
	Order       string             `json:"order"`
	Counts      StatusCounts       `json:"counts"`
	Rows        []presentation.Row `json:"rows"`
}

type StatusCounts struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"`
	Active   int `json:"active"`

	// Expired plus expiring.
	AttentionRequired int `json:"attention_required"`
}

// UploadResponse is returned once an uploaded report is stored.
type UploadResponse struct {
	Status   string `json:"status"`
	ID       string `json:"id"`
	Sequence int    `json:"sequence"`
}
