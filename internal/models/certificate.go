package models

import (
	"time"
)

const (
	UnknownSubject = "Unknown Subject"
	UnknownIssuer  = "Unknown Issuer"
)

// CertificateRecord is a single certificate as seen by one collection run.
type CertificateRecord struct {
	Subject          string    `json:"subject"`
	Issuer           string    `json:"issuer"`
	NotAfter         time.Time `json:"not_after"`
	DaysToExpiration int       `json:"days_to_expiration"`

	// Where the record was found. Not part of the identity of a record.
	Scope string `json:"scope,omitempty"`
	Store string `json:"store,omitempty"`
}

// Key identifies a certificate for deduplication purposes.
type Key struct {
	Issuer  string
	Subject string
}

func (r CertificateRecord) Key() Key {
	return Key{Issuer: r.Issuer, Subject: r.Subject}
}

// Expired reports whether the record was already expired at collection time.
func (r CertificateRecord) Expired() bool {
	return r.DaysToExpiration < 0
}

// ExpirationStatus is the severity tier a record is shown with.
type ExpirationStatus string

const (
	StatusExpired  ExpirationStatus = "expired"
	StatusExpiring ExpirationStatus = "expiring"
	StatusActive   ExpirationStatus = "active"
)

// DefaultWarnDays is the day count at or below which a valid certificate is flagged.
const DefaultWarnDays = 120

// Status classifies the record against the given warning threshold.
func (r CertificateRecord) Status(warnDays int) ExpirationStatus {
	switch {
	case r.DaysToExpiration < 0:
		return StatusExpired
	case r.DaysToExpiration <= warnDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// RequiresAction reports whether a record in this tier needs renewal or removal.
func (s ExpirationStatus) RequiresAction() bool {
	return s == StatusExpired || s == StatusExpiring
}
