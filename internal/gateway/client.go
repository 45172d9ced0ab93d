package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gmdjlee/etf-monitor/pkg/httputil"
	"github.com/gmdjlee/etf-monitor/pkg/logger"
)

// Client is the API gateway to the ETF backend. Every method performs
// exactly one request and never retries.
// ⭐ SSOT: 백엔드 REST 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new backend client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins escaped path segments onto the base URL
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// getJSON performs a GET and decodes the JSON body into dest
func (c *Client) getJSON(ctx context.Context, op Op, target string, dest interface{}) error {
	resp, err := c.httpClient.Get(ctx, target)
	if err != nil {
		return c.fail(op, 0, fmt.Errorf("HTTP request failed: %w", err))
	}
	return c.decode(op, resp, dest)
}

// postJSON performs a body-less POST and decodes the JSON body into dest
func (c *Client) postJSON(ctx context.Context, op Op, target string, dest interface{}) error {
	resp, err := c.httpClient.Post(ctx, target, "", nil)
	if err != nil {
		return c.fail(op, 0, fmt.Errorf("HTTP request failed: %w", err))
	}
	return c.decode(op, resp, dest)
}

func (c *Client) decode(op Op, resp *http.Response, dest interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(op, resp.StatusCode, fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, readMessage(resp.Body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return c.fail(op, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// fail logs the failure and wraps it into a gateway *Error
func (c *Client) fail(op Op, status int, err error) error {
	e := &Error{Op: op, StatusCode: status, Err: err}
	c.logger.WithError(err).WithFields(map[string]interface{}{
		"op":          string(op),
		"status_code": status,
	}).Error("Backend request failed")
	return e
}

// readMessage extracts the backend's {"message": ...} error text if present
func readMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return "empty body"
	}

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
