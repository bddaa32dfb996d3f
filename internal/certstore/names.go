package certstore

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"strings"
	"time"
)

var oidEmailAddress = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}

// SimpleDisplayName picks the most readable attribute of a distinguished name, in the
// order common name, organizational unit, organization, email address.
func SimpleDisplayName(name pkix.Name) string {
	if cn := strings.TrimSpace(name.CommonName); cn != "" {
		return cn
	}

	for _, values := range [][]string{name.OrganizationalUnit, name.Organization} {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}

	for _, atv := range name.Names {
		if !atv.Type.Equal(oidEmailAddress) {
			continue
		}
		if v, ok := atv.Value.(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}

// x509Certificate adapts a parsed certificate to the Certificate interface.
type x509Certificate struct {
	crt *x509.Certificate
}

// NewX509Certificate wraps crt as a store Certificate.
func NewX509Certificate(crt *x509.Certificate) Certificate {
	return x509Certificate{crt: crt}
}

func (c x509Certificate) NotAfter() time.Time {
	return c.crt.NotAfter
}

func (c x509Certificate) DisplayName(issuer bool) (string, error) {
	if issuer {
		if name := SimpleDisplayName(c.crt.Issuer); name != "" {
			return name, nil
		}
		return "", ErrEmptyName
	}

	if name := SimpleDisplayName(c.crt.Subject); name != "" {
		return name, nil
	}

	if len(c.crt.EmailAddresses) > 0 {
		return c.crt.EmailAddresses[0], nil
	}

	if len(c.crt.DNSNames) > 0 {
		return c.crt.DNSNames[0], nil
	}

	return "", ErrEmptyName
}

func (c x509Certificate) String() string {
	return fmt.Sprintf("%s (serial %s)", c.crt.Subject, c.crt.SerialNumber)
}
