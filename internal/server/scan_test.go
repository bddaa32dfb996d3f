package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cert-inventory/internal/inventory"
	"cert-inventory/internal/testutil"
	"cert-inventory/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadRecorder struct {
	status int
	bodies []string
}

func (u *uploadRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	u.bodies = append(u.bodies, string(body))
	w.WriteHeader(u.status)
}

func newUploadServer(t *testing.T, status int) (*httptest.Server, *uploadRecorder) {
	t.Helper()
	rec := &uploadRecorder{status: status}
	srv := httptest.NewTLSServer(rec)
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestScan_Table(t *testing.T) {
	cfg := loadTestConfig(t, writeStores(t), "")
	var out bytes.Buffer

	snapshot, err := Scan(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), ScanOptions{Out: &out})
	require.NoError(t, err)
	require.Len(t, snapshot.Records, 2)

	table := out.String()
	assert.True(t, strings.HasPrefix(table, "Description"))
	assert.Contains(t, table, "legacy.contoso.example")
	assert.Contains(t, table, "Expiring")
	assert.Contains(t, table, "Expired")
	assert.NotContains(t, table, "office.example")
	assert.NotContains(t, table, "trust_anchor")
	assert.NotContains(t, table, "\x1b[")
}

func TestScan_ReportOutput(t *testing.T) {
	cfg := loadTestConfig(t, writeStores(t), "")
	var out bytes.Buffer

	snapshot, err := Scan(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), ScanOptions{Out: &out, Output: OutputReport})
	require.NoError(t, err)

	assert.Equal(t, snapshot.Report, out.String())
	assert.True(t, strings.HasPrefix(out.String(), "\n"+inventory.ActiveHeader+"\n"))
}

func TestScan_UnknownOutput(t *testing.T) {
	cfg := loadTestConfig(t, writeStores(t), "")

	_, err := Scan(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), ScanOptions{Out: io.Discard, Output: "xml"})
	assert.ErrorContains(t, err, "unknown output")
}

func TestScan_SendsReport(t *testing.T) {
	srv, rec := newUploadServer(t, http.StatusOK)
	host := strings.TrimPrefix(srv.URL, "https://")

	cfg := loadTestConfig(t, writeStores(t), "transport:\n  host: "+host+"\n")
	logHandler := testutil.NewTestLogHandler()

	snapshot, err := Scan(context.Background(), cfg, slog.New(logHandler), ScanOptions{
		Out:        io.Discard,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	require.Len(t, rec.bodies, 1)
	assert.Equal(t, snapshot.Report, rec.bodies[0])
	assert.True(t, logHandler.ContainsMessage(slog.LevelInfo, "loading certificates"))
	assert.True(t, logHandler.ContainsMessage(slog.LevelInfo, "sending report to server"))
	assert.True(t, logHandler.ContainsMessage(slog.LevelInfo, "report delivered"))
}

func TestScan_SendFailure(t *testing.T) {
	tests := []struct {
		name            string
		failOnSendError bool
		wantErr         bool
	}{
		{"reported but not fatal", false, false},
		{"fatal when requested", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newUploadServer(t, http.StatusInternalServerError)
			host := strings.TrimPrefix(srv.URL, "https://")

			cfg := loadTestConfig(t, writeStores(t), "transport:\n  host: "+host+"\n")
			logHandler := testutil.NewTestLogHandler()
			var out bytes.Buffer

			snapshot, err := Scan(context.Background(), cfg, slog.New(logHandler), ScanOptions{
				Out:             &out,
				FailOnSendError: tt.failOnSendError,
				HTTPClient:      srv.Client(),
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSendFailed)
				assert.ErrorIs(t, err, transport.ErrUnexpectedStatus)
			} else {
				assert.NoError(t, err)
			}

			require.NotNil(t, snapshot)
			assert.Len(t, snapshot.Records, 2)
			assert.Contains(t, out.String(), "vpn.contoso.example")
			assert.True(t, logHandler.ContainsMessage(slog.LevelError, "failed to send report"))
		})
	}
}
