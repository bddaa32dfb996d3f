package inventory

import (
	"strings"

	"cert-inventory/internal/certstore"
	"cert-inventory/internal/models"
)

// ExtractSubject returns the subject display name of cert, or models.UnknownSubject.
func ExtractSubject(cert certstore.Certificate) string {
	return displayName(cert, false, models.UnknownSubject)
}

// ExtractIssuer returns the issuer display name of cert, or models.UnknownIssuer.
func ExtractIssuer(cert certstore.Certificate) string {
	return displayName(cert, true, models.UnknownIssuer)
}

func displayName(cert certstore.Certificate, issuer bool, fallback string) string {
	name, err := cert.DisplayName(issuer)
	if err != nil {
		return fallback
	}

	name = strings.TrimRight(name, "\x00")
	if strings.TrimSpace(name) == "" {
		return fallback
	}

	return name
}
