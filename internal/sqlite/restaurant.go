package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/repository"
)

// RestaurantRepository implements restaurant.Repository for SQLite
type RestaurantRepository struct {
	db *DB
}

// NewRestaurantRepository creates a new RestaurantRepository
func NewRestaurantRepository(db *DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// UpsertByPlaceID inserts the restaurant; if the place ID is already
// cached, the existing row wins and is returned unchanged.
func (r *RestaurantRepository) UpsertByPlaceID(ctx context.Context, rest *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO restaurants (id, place_id, name, address, latitude, longitude, price_level, rating, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(place_id) DO NOTHING
	`,
		rest.ID,
		rest.PlaceID,
		rest.Name,
		rest.Address,
		rest.Latitude,
		rest.Longitude,
		rest.PriceLevel,
		rest.Rating,
		nullable(rest.ImageURL),
		rest.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert restaurant: %w", mapError(err))
	}
	return r.getByPlaceID(ctx, rest.PlaceID)
}

// Get retrieves a restaurant by ID
func (r *RestaurantRepository) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, place_id, name, address, latitude, longitude, price_level, rating, image_url, created_at
		FROM restaurants WHERE id = ?
	`, id)
	return scanRestaurant(row)
}

// GetByIDs returns restaurants in the order of ids, skipping unknown ones.
func (r *RestaurantRepository) GetByIDs(ctx context.Context, ids []string) ([]restaurant.Restaurant, error) {
	results := make([]restaurant.Restaurant, 0, len(ids))
	for _, id := range ids {
		rest, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		results = append(results, *rest)
	}
	return results, nil
}

func (r *RestaurantRepository) getByPlaceID(ctx context.Context, placeID string) (*restaurant.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, place_id, name, address, latitude, longitude, price_level, rating, image_url, created_at
		FROM restaurants WHERE place_id = ?
	`, placeID)
	return scanRestaurant(row)
}

func scanRestaurant(row *sql.Row) (*restaurant.Restaurant, error) {
	var rest restaurant.Restaurant
	var address, imageURL sql.NullString
	err := row.Scan(
		&rest.ID,
		&rest.PlaceID,
		&rest.Name,
		&address,
		&rest.Latitude,
		&rest.Longitude,
		&rest.PriceLevel,
		&rest.Rating,
		&imageURL,
		&rest.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", mapError(err))
	}
	rest.Address = address.String
	rest.ImageURL = imageURL.String
	return &rest, nil
}
