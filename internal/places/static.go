package places

import (
	"context"

	"github.com/biteswipe/backend/internal/domain/restaurant"
)

// StaticClient serves a fixed place list. Used in tests and when no places
// API key is configured.
type StaticClient struct {
	Places []restaurant.Place
}

// SearchNearby returns the configured places regardless of location.
func (c *StaticClient) SearchNearby(_ context.Context, _ restaurant.Location) ([]restaurant.Place, error) {
	return c.Places, nil
}
