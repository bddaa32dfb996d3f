package inventory

import (
	"strconv"
	"strings"

	"cert-inventory/internal/models"
)

const (
	ActiveHeader  = "===== ACTIVE CERTIFICATES ====="
	ExpiredHeader = "===== EXPIRED CERTIFICATES ====="
)

// Format renders records as a plain text report with the valid certificates first and the
// expired ones second, each group in the order given.
func Format(records []models.CertificateRecord) string {
	var b strings.Builder

	b.WriteString("\n" + ActiveHeader + "\n")
	for _, rec := range records {
		if !rec.Expired() {
			writeRecord(&b, rec)
		}
	}

	b.WriteString(ExpiredHeader + "\n")
	for _, rec := range records {
		if rec.Expired() {
			writeRecord(&b, rec)
		}
	}

	return b.String()
}

func writeRecord(b *strings.Builder, rec models.CertificateRecord) {
	b.WriteString("Subject: " + rec.Subject + "\n")
	b.WriteString("Issuer: " + rec.Issuer + "\n")
	b.WriteString("Days to Expiration: " + strconv.Itoa(rec.DaysToExpiration) + "\n\n")
}
