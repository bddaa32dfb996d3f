package models

import (
	"time"
)

// Snapshot is the immutable result of one pipeline run.
type Snapshot struct {
	ID          string              `json:"id"`
	CollectedAt time.Time           `json:"collected_at"`
	Records     []CertificateRecord `json:"records"`
	Report      string              `json:"-"`
}

// Counts returns the number of valid and expired records.
func (s *Snapshot) Counts() (active, expired int) {
	for _, rec := range s.Records {
		if rec.Expired() {
			expired++
		} else {
			active++
		}
	}
	return active, expired
}

// UploadedReport is a report received by the upload endpoint.
type UploadedReport struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"sequence"`
	RemoteAddr string    `json:"remote_addr"`
	ReceivedAt time.Time `json:"received_at"`
	Body       []byte    `json:"-"`
}
