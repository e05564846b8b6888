// Package api is the REST client for the employee management backend.
// Every call is a single round trip: no retries and no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ems/internal/platform/metrics"
	"ems/internal/platform/requestctx"
)

const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
	metrics    *metrics.Collector

	Auth        *AuthService
	Employees   *EmployeeService
	Departments *DepartmentService
	Leave       *LeaveService
	Attendance  *AttendanceService
	Payroll     *PayrollService
	Performance *PerformanceService
	Dashboard   *DashboardService
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthService{c: c}
	c.Employees = &EmployeeService{c: c}
	c.Departments = &DepartmentService{c: c}
	c.Leave = &LeaveService{c: c}
	c.Attendance = &AttendanceService{c: c}
	c.Payroll = &PayrollService{c: c}
	c.Performance = &PerformanceService{c: c}
	c.Dashboard = &DashboardService{c: c}
	return c, nil
}

// SetTokenSource replaces the token source. The session store is built
// after the client, so the wiring code installs it here.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *Client) BaseURL() string { return c.baseURL }

type call struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	version int64
}

func (c *Client) do(ctx context.Context, rc call, out any) error {
	ctx, requestID := requestctx.EnsureRequestID(ctx)

	var body io.Reader
	if rc.body != nil {
		payload, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", rc.op, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + rc.path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, rc.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", rc.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if rc.version > 0 {
		req.Header.Set("If-Match", strconv.Quote(strconv.FormatInt(rc.version, 10)))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.metrics.Record(rc.op, 0, duration)
		c.logger.Debug("api call failed",
			zap.String("op", rc.op), zap.String("method", rc.method), zap.String("path", rc.path),
			zap.String("requestId", requestID), zap.Duration("duration", duration), zap.Error(err))
		return &TransportError{Op: rc.op, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.Record(rc.op, resp.StatusCode, duration)
	c.logger.Debug("api call",
		zap.String("op", rc.op), zap.String("method", rc.method), zap.String("path", rc.path),
		zap.Int("status", resp.StatusCode), zap.String("requestId", requestID), zap.Duration("duration", duration))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: rc.op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: rc.op, Status: resp.StatusCode, Body: data}
	}
	return decode(rc.op, data, out)
}

func decode(op string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if text, ok := out.(*string); ok {
		if err := json.Unmarshal(data, text); err != nil {
			*text = string(data)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func idPath(prefix string, id int64, suffix ...string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
