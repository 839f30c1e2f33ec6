package restaurant

import "context"

// Repository provides persistence for the restaurant cache.
type Repository interface {
	// UpsertByPlaceID inserts the restaurant or, if a row with the same
	// place ID already exists, returns the existing row unchanged.
	UpsertByPlaceID(ctx context.Context, r *Restaurant) (*Restaurant, error)
	Get(ctx context.Context, id string) (*Restaurant, error)
	// GetByIDs returns restaurants in the order of the given IDs, skipping
	// unknown ones.
	GetByIDs(ctx context.Context, ids []string) ([]Restaurant, error)
}

// PlacesClient searches for restaurants near a location through an
// external place-search collaborator.
type PlacesClient interface {
	SearchNearby(ctx context.Context, loc Location) ([]Place, error)
}
