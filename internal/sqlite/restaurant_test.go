package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestRestaurantRepository_UpsertReusesCachedRow(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewRestaurantRepository(db)

	first, err := repo.UpsertByPlaceID(ctx, &restaurant.Restaurant{
		ID:        "r1",
		PlaceID:   "place1",
		Name:      "Sushi Town",
		Address:   "123 Main St",
		Latitude:  49.26,
		Longitude: -123.25,
		Rating:    4.5,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, "r1", first.ID)

	// Rediscovering the same place keeps the original row and ID.
	second, err := repo.UpsertByPlaceID(ctx, &restaurant.Restaurant{
		ID:        "r2",
		PlaceID:   "place1",
		Name:      "Sushi Town Renamed",
		Latitude:  49.26,
		Longitude: -123.25,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, "r1", second.ID)
	require.Equal(t, "Sushi Town", second.Name)
}

func TestRestaurantRepository_Get(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewRestaurantRepository(db)

	_, err := repo.UpsertByPlaceID(ctx, &restaurant.Restaurant{
		ID:        "r1",
		PlaceID:   "place1",
		Name:      "Taco Spot",
		Latitude:  49.26,
		Longitude: -123.25,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Taco Spot", got.Name)
	require.Empty(t, got.Address)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRestaurantRepository_GetByIDsPreservesOrder(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewRestaurantRepository(db)

	for i, id := range []string{"r1", "r2", "r3"} {
		_, err := repo.UpsertByPlaceID(ctx, &restaurant.Restaurant{
			ID:        id,
			PlaceID:   "place" + id,
			Name:      "Restaurant " + id,
			Latitude:  49.26,
			Longitude: -123.25 + float64(i),
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	got, err := repo.GetByIDs(ctx, []string{"r3", "missing", "r1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "r3", got[0].ID)
	require.Equal(t, "r1", got[1].ID)
}
