package testutil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cert-inventory/internal/config"
	"cert-inventory/internal/data"
	"cert-inventory/internal/middlewares"
	"cert-inventory/internal/mocks"
	"cert-inventory/internal/models"

	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for testing
type TestContext struct {
	AppContext     *middlewares.AppContext
	Request        *http.Request
	Response       *httptest.ResponseRecorder
	MockController *gomock.Controller
	MockSink       *mocks.MockSink
	Snapshots      *data.MemCache
	LogHandler     *TestLogHandler
}

// NewTestConfig returns a configuration carrying the defaults handlers rely on.
func NewTestConfig() *config.Config {
	return &config.Config{
		Inventory: config.InventoryConfig{WarnDays: models.DefaultWarnDays},
		Receiver:  config.ReceiverConfig{MaxBody: 1 << 20, Sink: "file"},
	}
}

// NewTestContextWithURL creates a complete test setup with sensible defaults
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	return NewTestContextWithBody(t, method, url, nil)
}

// NewTestContextWithBody is NewTestContextWithURL with a request body.
func NewTestContextWithBody(t *testing.T, method, url string, body io.Reader) *TestContext {
	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	ctrl := gomock.NewController(t)
	mockSink := mocks.NewMockSink(ctrl)
	snapshots := data.NewMemCache(logger)

	req := httptest.NewRequest(method, url, body)
	rr := httptest.NewRecorder()

	appCtx := middlewares.NewAppContext(req.Context(), NewTestConfig(), logger, snapshots, mockSink)
	appCtx.Request = req
	appCtx.Response = rr

	return &TestContext{
		AppContext:     appCtx,
		Request:        req,
		Response:       rr,
		MockController: ctrl,
		MockSink:       mockSink,
		Snapshots:      snapshots,
		LogHandler:     logHandler,
	}
}

// Publish makes snapshot the current inventory.
func (tc *TestContext) Publish(snapshot *models.Snapshot) {
	tc.Snapshots.Publish(context.Background(), snapshot)
}

func (tc *TestContext) AssertLogContains(t *testing.T, level slog.Level, message string) {
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

func (tc *TestContext) AssertLogCount(t *testing.T, level slog.Level, expectedCount int) {
	count := tc.LogHandler.CountByLevel(level)
	if count != expectedCount {
		t.Errorf("Expected %d log entries at level %v, got %d", expectedCount, level, count)
	}
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, tc.Response.Code)
	}
}

// AssertContentType checks the content type header
func (tc *TestContext) AssertContentType(t *testing.T, expectedType string) {
	if ct := tc.Response.Header().Get("Content-Type"); !strings.HasPrefix(ct, expectedType) {
		t.Errorf("Expected content type %s, got %s", expectedType, ct)
	}
}

// GetResponseBody returns the raw response body
func (tc *TestContext) GetResponseBody() string {
	return tc.Response.Body.String()
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

// DecodeJSON parses the response body into v
func (tc *TestContext) DecodeJSON(t *testing.T, v any) {
	if err := json.Unmarshal(tc.Response.Body.Bytes(), v); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
}

// AssertJSONField checks a specific field in a JSON response
func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	response := tc.GetJSONResponse(t)
	if actual, ok := response[field]; !ok || actual != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, response[field])
	}
}
