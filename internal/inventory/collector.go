package inventory

import (
	"log/slog"
	"time"

	"cert-inventory/internal/certstore"
	"cert-inventory/internal/metrics"
	"cert-inventory/internal/models"
	"cert-inventory/internal/utils"
)

// Collector reads certificate records out of a set of stores.
type Collector struct {
	provider certstore.Provider
	deny     DenyList
	now      func() time.Time
	logger   *slog.Logger
}

func NewCollector(provider certstore.Provider, deny DenyList, logger *slog.Logger) *Collector {
	return &Collector{
		provider: provider,
		deny:     deny,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the clock used to compute days to expiration.
func (c *Collector) WithClock(now func() time.Time) *Collector {
	c.now = now
	return c
}

// Collect enumerates every location in order and returns the records that are not noise.
// Stores that cannot be opened are skipped.
func (c *Collector) Collect(locations []certstore.Location) []models.CertificateRecord {
	return c.CollectAt(locations, c.now())
}

// CollectAt is Collect with an explicit clock reading shared by every record of the run.
func (c *Collector) CollectAt(locations []certstore.Location, now time.Time) []models.CertificateRecord {
	records := make([]models.CertificateRecord, 0)

	for _, loc := range locations {
		records = c.collectLocation(records, loc, now)
	}

	return records
}

func (c *Collector) collectLocation(records []models.CertificateRecord, loc certstore.Location, now time.Time) []models.CertificateRecord {
	scope, name := string(loc.Scope), loc.Name

	store, err := c.provider.Open(loc)
	if err != nil || store == nil {
		c.logger.Debug("skipping certificate store", "location", loc.String(), "error", err)
		metrics.StoreOpens.WithLabelValues(scope, name, metrics.ResultFailure).Inc()
		return records
	}
	defer func() {
		if err := store.Close(); err != nil {
			c.logger.Warn("failed to close certificate store", "location", loc.String(), "error", err)
		}
	}()
	metrics.StoreOpens.WithLabelValues(scope, name, metrics.ResultSuccess).Inc()

	certs, err := store.Certificates()
	if err != nil {
		c.logger.Warn("certificate enumeration incomplete", "location", loc.String(), "read", len(certs), "error", err)
	}
	metrics.CertificatesEnumerated.WithLabelValues(scope, name).Add(float64(len(certs)))

	kept := 0
	for _, cert := range certs {
		if cert == nil {
			continue
		}

		notAfter := cert.NotAfter()
		rec := models.CertificateRecord{
			Subject:          ExtractSubject(cert),
			Issuer:           ExtractIssuer(cert),
			NotAfter:         notAfter,
			DaysToExpiration: utils.DaysUntil(notAfter, now),
			Scope:            scope,
			Store:            name,
		}

		if reason, noise := c.deny.Check(rec); noise {
			metrics.NoiseDropped.WithLabelValues(string(reason)).Inc()
			continue
		}

		records = append(records, rec)
		kept++
	}

	c.logger.Debug("collected certificate store", "location", loc.String(), "enumerated", len(certs), "kept", kept)

	return records
}
