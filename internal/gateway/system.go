package gateway

import (
	"context"

	"github.com/gmdjlee/etf-monitor/internal/contracts"
)

// Initialize asks the backend to bootstrap its data
// POST /api/system/initialize
func (c *Client) Initialize(ctx context.Context) (*contracts.SystemMessage, error) {
	var msg contracts.SystemMessage
	if err := c.postJSON(ctx, OpInitialize, c.endpoint("api", "system", "initialize"), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Update asks the backend to refresh the underlying holdings data
// POST /api/system/update
func (c *Client) Update(ctx context.Context) (*contracts.SystemMessage, error) {
	var msg contracts.SystemMessage
	if err := c.postJSON(ctx, OpUpdate, c.endpoint("api", "system", "update"), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Health probes the backend. A 503 still carries a decodable body, but it
// is reported as an error like any other non-success status.
// GET /api/system/health
func (c *Client) Health(ctx context.Context) (*contracts.SystemHealth, error) {
	var h contracts.SystemHealth
	if err := c.getJSON(ctx, OpHealth, c.endpoint("api", "system", "health"), &h); err != nil {
		return nil, err
	}
	return &h, nil
}
