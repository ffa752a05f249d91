package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
)

const (
	categoryCacheKey  = "reference:categories"
	referenceCacheTTL = 10 * time.Minute
)

// CategoryService serves the admin-managed category reference data. Reads go
// through Redis; any write drops the cached list.
type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
	RDB          *redis.Client
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	// A cache miss or cache failure both fall through to the database.
	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, categoryCacheKey).Bytes(); err == nil {
			var categories []models.Category
			if json.Unmarshal(cached, &categories) == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.CategoryRepo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.RDB != nil {
		if payload, err := json.Marshal(categories); err == nil {
			s.RDB.Set(ctx, categoryCacheKey, payload, referenceCacheTTL)
		}
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	created, err := s.CategoryRepo.CreateCategory(ctx, category)
	if err != nil {
		return models.Category{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	updated, err := s.CategoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		return models.Category{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.CategoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.RDB != nil {
		s.RDB.Del(ctx, categoryCacheKey)
	}
}
