package utils

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

var pemPreamble = []byte("-----BEGIN")

// ParseCertificates extracts every certificate from PEM or raw DER input.
// Non-certificate PEM blocks (keys, CSRs) are skipped.
func ParseCertificates(data []byte) ([]*x509.Certificate, error) {
	if !bytes.Contains(data, pemPreamble) {
		cert, err := x509.ParseCertificate(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DER certificate: %w", err)
		}
		return []*x509.Certificate{cert}, nil
	}

	var certs []*x509.Certificate
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate: %w", err)
		}
		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	return certs, nil
}
