package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/stretchr/testify/require"
)

func TestGoogleClient_SearchNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/nearbysearch/json", r.URL.Path)
		require.Equal(t, "restaurant", r.URL.Query().Get("type"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "1000", r.URL.Query().Get("radius"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"place_id": "place1",
					"name": "Sushi Town",
					"vicinity": "123 Main St",
					"geometry": {"location": {"lat": 49.26, "lng": -123.25}},
					"price_level": 2,
					"rating": 4.5,
					"photos": [{"photo_reference": "ref1"}]
				},
				{
					"place_id": "place2",
					"name": "Taco Spot",
					"geometry": {"location": {"lat": 49.27, "lng": -123.24}},
					"rating": 4.0
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewGoogleClient("test-key", srv.URL, nil)

	got, err := client.SearchNearby(context.Background(), restaurant.Location{
		Latitude:  49.26,
		Longitude: -123.25,
		Radius:    1000,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "place1", got[0].PlaceID)
	require.Equal(t, "Sushi Town", got[0].Name)
	require.Equal(t, "123 Main St", got[0].Address)
	require.Equal(t, 49.26, got[0].Latitude)
	require.Contains(t, got[0].ImageURL, "photo_reference=ref1")
	require.Empty(t, got[1].ImageURL)
}

func TestGoogleClient_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	client := NewGoogleClient("test-key", srv.URL, nil)

	got, err := client.SearchNearby(context.Background(), restaurant.Location{Radius: 500})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGoogleClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED"}`))
	}))
	defer srv.Close()

	client := NewGoogleClient("bad-key", srv.URL, nil)

	_, err := client.SearchNearby(context.Background(), restaurant.Location{Radius: 500})
	require.Error(t, err)
	require.Contains(t, err.Error(), "REQUEST_DENIED")
}
