// Package transport delivers finished inventory reports to a remote collector.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cert-inventory/internal/metrics"
	"cert-inventory/internal/version"

	"github.com/google/uuid"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

const (
	ContentType    = "application/x-www-form-urlencoded"
	HeaderReportID = "X-Report-ID"
)

type Client struct {
	httpClient *http.Client
	url        string
	token      string
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which only carries the timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithToken sends the report with a bearer token.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// NewClient returns a client posting to https://host+path.
func NewClient(host, path string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        "https://" + host + path,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) URL() string {
	return c.url
}

// Send posts report as the raw request body. Any status outside 2xx is an error.
func (c *Client) Send(ctx context.Context, report string) (err error) {
	start := time.Now()
	reportID := uuid.NewString()

	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailure
		}
		metrics.TransportSends.WithLabelValues(result).Inc()
		metrics.TransportDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(report))
	if err != nil {
		return fmt.Errorf("failed to build report request: %w", err)
	}

	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(HeaderReportID, reportID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("sending report", "url", c.url, "report_id", reportID, "bytes", len(report))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	c.logger.Info("report delivered", "url", c.url, "report_id", reportID, "status", resp.StatusCode)

	return nil
}
