package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

const locationCacheKey = "reference:locations"

type LocationService struct {
	LocationRepo *repositories.LocationRepository
	RDB          *redis.Client
}

func (s *LocationService) GetLocations(ctx context.Context) ([]models.Location, error) {
	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, locationCacheKey).Bytes(); err == nil {
			var locations []models.Location
			if json.Unmarshal(cached, &locations) == nil {
				return locations, nil
			}
		}
	}

	locations, err := s.LocationRepo.GetLocations(ctx)
	if err != nil {
		return nil, err
	}
	if s.RDB != nil {
		if payload, err := json.Marshal(locations); err == nil {
			s.RDB.Set(ctx, locationCacheKey, payload, referenceCacheTTL)
		}
	}
	return locations, nil
}

func (s *LocationService) GetLocationByID(ctx context.Context, id int) (models.Location, error) {
	return s.LocationRepo.GetLocationByID(ctx, id)
}

func (s *LocationService) CreateLocation(ctx context.Context, loc models.Location) (models.Location, error) {
	created, err := s.LocationRepo.CreateLocation(ctx, loc)
	if err != nil {
		return models.Location{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, loc models.Location) (models.Location, error) {
	updated, err := s.LocationRepo.UpdateLocation(ctx, loc)
	if err != nil {
		return models.Location{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id int) error {
	if err := s.LocationRepo.DeleteLocation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *LocationService) invalidate(ctx context.Context) {
	if s.RDB != nil {
		s.RDB.Del(ctx, locationCacheKey)
	}
}
