package inventory

import (
	"errors"
	"log/slog"
	"time"

	"cert-inventory/internal/certstore"
	"cert-inventory/internal/mocks"
	"cert-inventory/internal/models"
	"cert-inventory/internal/testutil"

	"go.uber.org/mock/gomock"
)

var (
	fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	errNameUnavailable = errors.New("name unavailable")
)

func mockCert(ctrl *gomock.Controller, subject, issuer string, notAfter time.Time) *mocks.MockCertificate {
	cert := mocks.NewMockCertificate(ctrl)
	cert.EXPECT().NotAfter().Return(notAfter).AnyTimes()
	cert.EXPECT().DisplayName(false).Return(subject, nil).AnyTimes()
	cert.EXPECT().DisplayName(true).Return(issuer, nil).AnyTimes()
	return cert
}

func mockStore(ctrl *gomock.Controller, certs ...certstore.Certificate) *mocks.MockStore {
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Certificates().Return(certs, nil)
	store.EXPECT().Close().Return(nil)
	return store
}

func record(subject, issuer string, notAfter time.Time) models.CertificateRecord {
	return models.CertificateRecord{
		Subject:          subject,
		Issuer:           issuer,
		NotAfter:         notAfter,
		DaysToExpiration: int(notAfter.Sub(fixedNow) / (24 * time.Hour)),
	}
}

func days(n int) time.Time {
	return fixedNow.Add(time.Duration(n) * 24 * time.Hour)
}

func testLogger() (*slog.Logger, *testutil.TestLogHandler) {
	handler := testutil.NewTestLogHandler()
	return slog.New(handler), handler
}

var (
	machineMy   = certstore.Location{Scope: certstore.ScopeMachine, Name: "MY"}
	machineRoot = certstore.Location{Scope: certstore.ScopeMachine, Name: "Root"}
	userMy      = certstore.Location{Scope: certstore.ScopeUser, Name: "MY"}
)
