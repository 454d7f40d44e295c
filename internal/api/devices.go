package api

import (
	"context"
	"net/http"

	"github.com/netdash/netdash/internal/model"
)

// Devices fetches the full device inventory.
func (c *Client) Devices(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	if err := c.do(ctx, http.MethodGet, "/api/devices", nil, &devices, true); err != nil {
		return nil, err
	}
	return devices, nil
}

// HealthCheck queries the backend health endpoint.
func (c *Client) HealthCheck(ctx context.Context) (*model.Health, error) {
	var health model.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health, true); err != nil {
		return nil, err
	}
	return &health, nil
}
