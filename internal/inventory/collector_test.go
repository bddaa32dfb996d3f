package inventory

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"cert-inventory/internal/certstore"
	"cert-inventory/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCollect_SkipsStoreThatFailsToOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, logs := testLogger()

	provider.EXPECT().Open(machineMy).Return(nil, certstore.ErrStoreNotFound)
	provider.EXPECT().Open(userMy).Return(mockStore(ctrl,
		mockCert(ctrl, "Contoso Ltd", "Contoso CA", days(30)),
	), nil)

	collector := NewCollector(provider, DefaultDenyList, logger).WithClock(func() time.Time { return fixedNow })
	records := collector.Collect([]certstore.Location{machineMy, userMy})

	require.Len(t, records, 1)
	assert.Equal(t, "Contoso Ltd", records[0].Subject)
	assert.Equal(t, "Contoso CA", records[0].Issuer)
	assert.Equal(t, 30, records[0].DaysToExpiration)
	assert.Equal(t, "user", records[0].Scope)
	assert.Equal(t, "MY", records[0].Store)

	assert.NotEmpty(t, logs.GetRecordsByLevel(slog.LevelDebug))
}

func TestCollect_NoLocations(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, _ := testLogger()

	records := NewCollector(provider, DefaultDenyList, logger).Collect(nil)

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollect_FiltersNoise(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, _ := testLogger()

	provider.EXPECT().Open(machineRoot).Return(mockStore(ctrl,
		mockCert(ctrl, "Microsoft Root Authority", "Microsoft Corporation", days(400)),
		mockCert(ctrl, "123e4567-e89b-12d3-a456-426614174000", "Corp CA", days(400)),
		mockCert(ctrl, "trust_root_1", "Corp CA", days(400)),
		mockCert(ctrl, "Contoso Ltd", "Contoso CA", days(400)),
	), nil)

	records := NewCollector(provider, DefaultDenyList, logger).
		WithClock(func() time.Time { return fixedNow }).
		Collect([]certstore.Location{machineRoot})

	require.Len(t, records, 1)
	assert.Equal(t, "Contoso Ltd", records[0].Subject)
}

func TestCollect_KeepsEnumerationOrderAcrossLocations(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, _ := testLogger()

	gomock.InOrder(
		provider.EXPECT().Open(machineMy).Return(mockStore(ctrl,
			mockCert(ctrl, "b", "Corp", days(5)),
			mockCert(ctrl, "a", "Corp", days(-5)),
		), nil),
		provider.EXPECT().Open(userMy).Return(mockStore(ctrl,
			mockCert(ctrl, "c", "Corp", days(1)),
		), nil),
	)

	records := NewCollector(provider, DefaultDenyList, logger).
		WithClock(func() time.Time { return fixedNow }).
		Collect([]certstore.Location{machineMy, userMy})

	require.Len(t, records, 3)
	assert.Equal(t, "b", records[0].Subject)
	assert.Equal(t, "a", records[1].Subject)
	assert.Equal(t, -5, records[1].DaysToExpiration)
	assert.Equal(t, "c", records[2].Subject)
}

func TestCollect_PartialEnumerationKeepsRecordsRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, logs := testLogger()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Certificates().Return([]certstore.Certificate{
		mockCert(ctrl, "first", "Corp", days(10)),
	}, errors.New("enumeration aborted"))
	store.EXPECT().Close().Return(nil)

	provider.EXPECT().Open(machineMy).Return(store, nil)
	provider.EXPECT().Open(userMy).Return(mockStore(ctrl,
		mockCert(ctrl, "second", "Corp", days(20)),
	), nil)

	records := NewCollector(provider, DefaultDenyList, logger).
		WithClock(func() time.Time { return fixedNow }).
		Collect([]certstore.Location{machineMy, userMy})

	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Subject)
	assert.Equal(t, "second", records[1].Subject)
	assert.Len(t, logs.GetRecordsByLevel(slog.LevelWarn), 1)
}

func TestCollect_ClosesStoreAndToleratesCloseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, logs := testLogger()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Certificates().Return(nil, nil)
	store.EXPECT().Close().Return(errors.New("handle already released")).Times(1)
	provider.EXPECT().Open(machineMy).Return(store, nil)

	records := NewCollector(provider, DefaultDenyList, logger).Collect([]certstore.Location{machineMy})

	assert.Empty(t, records)
	assert.Len(t, logs.GetRecordsByLevel(slog.LevelWarn), 1)
}

func TestCollect_UsesOneClockReading(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, _ := testLogger()

	provider.EXPECT().Open(machineMy).Return(mockStore(ctrl,
		mockCert(ctrl, "a", "Corp", fixedNow.Add(36*time.Hour)),
		mockCert(ctrl, "b", "Corp", fixedNow.Add(36*time.Hour)),
	), nil)

	calls := 0
	clock := func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls-1) * 24 * time.Hour)
	}

	records := NewCollector(provider, DefaultDenyList, logger).WithClock(clock).Collect([]certstore.Location{machineMy})

	require.Len(t, records, 2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, records[0].DaysToExpiration, records[1].DaysToExpiration)
	assert.Equal(t, 1, records[0].DaysToExpiration)
}

func TestCollect_FallbackNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	logger, _ := testLogger()

	cert := mocks.NewMockCertificate(ctrl)
	cert.EXPECT().NotAfter().Return(days(3))
	cert.EXPECT().DisplayName(false).Return("", errNameUnavailable)
	cert.EXPECT().DisplayName(true).Return("", nil)
	provider.EXPECT().Open(machineMy).Return(mockStore(ctrl, cert), nil)

	records := NewCollector(provider, DefaultDenyList, logger).
		WithClock(func() time.Time { return fixedNow }).
		Collect([]certstore.Location{machineMy})

	require.Len(t, records, 1)
	assert.Equal(t, "Unknown Subject", records[0].Subject)
	assert.Equal(t, "Unknown Issuer", records[0].Issuer)
}
