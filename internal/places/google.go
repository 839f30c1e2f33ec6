// Package places talks to the external place-search collaborator. Only the
// narrow nearby-search surface the session core needs is implemented.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// GoogleClient implements restaurant.PlacesClient against the Google Places
// nearby search API.
type GoogleClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewGoogleClient creates a client using apiKey. baseURL overrides the
// production endpoint for tests; empty means the real API.
func NewGoogleClient(apiKey, baseURL string, logger *slog.Logger) *GoogleClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		PriceLevel int     `json:"price_level"`
		Rating     float64 `json:"rating"`
		Photos     []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// SearchNearby returns restaurants around loc.
func (c *GoogleClient) SearchNearby(ctx context.Context, loc restaurant.Location) ([]restaurant.Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", loc.Latitude, loc.Longitude))
	q.Set("radius", fmt.Sprintf("%.0f", loc.Radius))
	q.Set("type", "restaurant")
	q.Set("key", c.apiKey)

	reqURL := c.baseURL + "/nearbysearch/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building places request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request: unexpected status %d", resp.StatusCode)
	}

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", err)
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places search failed: %s", body.Status)
	}

	results := make([]restaurant.Place, 0, len(body.Results))
	for _, res := range body.Results {
		p := restaurant.Place{
			PlaceID:    res.PlaceID,
			Name:       res.Name,
			Address:    res.Vicinity,
			Latitude:   res.Geometry.Location.Lat,
			Longitude:  res.Geometry.Location.Lng,
			PriceLevel: res.PriceLevel,
			Rating:     res.Rating,
		}
		if len(res.Photos) > 0 {
			p.ImageURL = fmt.Sprintf("%s/photo?maxwidth=400&photo_reference=%s&key=%s",
				c.baseURL, res.Photos[0].PhotoReference, c.apiKey)
		}
		results = append(results, p)
	}
	c.logger.Debug("places search", "count", len(results))
	return results, nil
}
