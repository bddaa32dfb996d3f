package inventory

import (
	"sort"

	"cert-inventory/internal/models"
)

// Reduce keeps one record per (issuer, subject), the one expiring last, and orders the
// result by expiration ascending. Ties keep first-seen order. records is not modified.
func Reduce(records []models.CertificateRecord) []models.CertificateRecord {
	index := make(map[models.Key]int, len(records))
	out := make([]models.CertificateRecord, 0, len(records))

	for _, rec := range records {
		key := rec.Key()
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, rec)
			continue
		}

		if rec.NotAfter.After(out[i].NotAfter) {
			out[i] = rec
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NotAfter.Before(out[j].NotAfter)
	})

	return out
}
