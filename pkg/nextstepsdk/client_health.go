package nextstepsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, "/livez", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service and its dependencies are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, "/readyz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
