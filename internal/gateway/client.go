// Package gateway talks to the remote market-stand API that owns all stand
// and transaction data. Every failure, whatever its cause, is reported as a
// *RequestError wrapping ErrRequestFailed.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
)

const serviceName = "market-stand-gateway"

// ErrRequestFailed is the only failure kind the gateway distinguishes.
var ErrRequestFailed = errors.New("gateway request failed")

// RequestError describes a failed gateway call.
type RequestError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s %s: status %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequestFailed}
	}
	return []error{ErrRequestFailed, e.Err}
}

// Client issues requests against {base}, which already includes the /api suffix.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	metrics  *metrics.Metrics
}

// NewClient creates a gateway client. A zero timeout means no client-side deadline.
func NewClient(apiBaseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:  strings.TrimRight(apiBaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		validate: domain.NewValidator(),
		metrics:  m,
	}
}

// DashboardStats fetches GET {base}/dashboard/stats.
func (c *Client) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, "DashboardStats", http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return domain.DashboardStats{}, err
	}
	if stats.RecentTransactions == nil {
		stats.RecentTransactions = []domain.Transaction{}
	}
	return stats, nil
}

// ListStands fetches GET {base}/market-stands, preserving the gateway's order.
func (c *Client) ListStands(ctx context.Context) ([]domain.MarketStand, error) {
	var stands []domain.MarketStand
	if err := c.do(ctx, "ListStands", http.MethodGet, "/market-stands", nil, &stands); err != nil {
		return nil, err
	}
	if stands == nil {
		stands = []domain.MarketStand{}
	}
	return stands, nil
}

// UpdateStandStatus sends PUT {base}/market-stands/{id}/status?status={status}.
func (c *Client) UpdateStandStatus(ctx context.Context, id domain.StandID, status domain.StandStatus) error {
	path := "/market-stands/" + url.PathEscape(string(id)) + "/status"
	query := url.Values{"status": {string(status)}}
	return c.do(ctx, "UpdateStandStatus", http.MethodPut, path, query, nil)
}

// DeleteStand sends DELETE {base}/market-stands/{id}.
func (c *Client) DeleteStand(ctx context.Context, id domain.StandID) error {
	path := "/market-stands/" + url.PathEscape(string(id))
	return c.do(ctx, "DeleteStand", http.MethodDelete, path, nil, nil)
}

// do performs one request. When out is non-nil the 2xx body is decoded into it
// and validated; otherwise the body is drained and ignored.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, out any) (err error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	start := time.Now()
	logger.ExternalServiceCall(serviceName, op, "method", method, "url", target)
	defer func() {
		c.metrics.ObserveGateway(op, start, err)
		logger.ExternalServiceResult(serviceName, op, err, "duration_ms", time.Since(start).Milliseconds())
	}()

	fail := func(status int, cause error) error {
		return &RequestError{Op: op, Method: method, URL: target, StatusCode: status, Err: cause}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return fail(resp.StatusCode, nil)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(0, fmt.Errorf("decode response: %w", err))
	}
	if err := c.validatePayload(out); err != nil {
		return fail(0, fmt.Errorf("invalid response payload: %w", err))
	}
	return nil
}

func (c *Client) validatePayload(out any) error {
	switch v := out.(type) {
	case *domain.DashboardStats:
		return c.validate.Struct(v)
	case *[]domain.MarketStand:
		for i := range *v {
			if err := c.validate.Struct((*v)[i]); err != nil {
				return fmt.Errorf("stand %d: %w", i, err)
			}
		}
	}
	return nil
}
