package restaurant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biteswipe/backend/internal/repository"
	"github.com/google/uuid"
)

// Service discovers restaurants around a location and maintains the local
// cache keyed by external place ID.
type Service struct {
	restaurants Repository
	places      PlacesClient
	logger      *slog.Logger
}

// NewService creates a new restaurant service.
func NewService(restaurants Repository, places PlacesClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{restaurants: restaurants, places: places, logger: logger}
}

// FindCandidates searches near loc and returns the cached restaurant
// records for every result, creating rows for places seen the first time.
func (s *Service) FindCandidates(ctx context.Context, loc Location) ([]Restaurant, error) {
	places, err := s.places.SearchNearby(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscoveryFailed, err)
	}

	results := make([]Restaurant, 0, len(places))
	for _, p := range places {
		r := &Restaurant{
			ID:         uuid.NewString(),
			PlaceID:    p.PlaceID,
			Name:       p.Name,
			Address:    p.Address,
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			PriceLevel: p.PriceLevel,
			Rating:     p.Rating,
			ImageURL:   p.ImageURL,
			CreatedAt:  time.Now(),
		}
		stored, err := s.restaurants.UpsertByPlaceID(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("storing restaurant: %w", err)
		}
		results = append(results, *stored)
	}
	s.logger.Info("restaurant candidates resolved", "count", len(results))
	return results, nil
}

// Get returns the restaurant by ID.
func (s *Service) Get(ctx context.Context, id string) (*Restaurant, error) {
	r, err := s.restaurants.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading restaurant: %w", err)
	}
	return r, nil
}

// GetByIDs returns restaurants in candidate-list order.
func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]Restaurant, error) {
	return s.restaurants.GetByIDs(ctx, ids)
}
