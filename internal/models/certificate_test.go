package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCertificateRecord_Status(t *testing.T) {
	tests := []struct {
		name           string
		days           int
		expected       ExpirationStatus
		requiresAction bool
	}{
		{name: "expired", days: -1, expected: StatusExpired, requiresAction: true},
		{name: "expires today", days: 0, expected: StatusExpiring, requiresAction: true},
		{name: "at warning threshold", days: DefaultWarnDays, expected: StatusExpiring, requiresAction: true},
		{name: "past warning threshold", days: DefaultWarnDays + 1, expected: StatusActive, requiresAction: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := CertificateRecord{DaysToExpiration: tt.days}.Status(DefaultWarnDays)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.requiresAction, status.RequiresAction())
		})
	}
}
