package services

import (
	"context"
	"strings"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/models"
	"github.com/kberg/flashdeck/internal/repository"
)

// CategoryService handles category-related business logic
type CategoryService interface {
	Create(ctx context.Context, userID int64, name, color string) (*models.Category, error)
	Get(ctx context.Context, id, userID int64) (*models.Category, error)
	List(ctx context.Context, userID int64) ([]models.Category, error)
	Update(ctx context.Context, id, userID int64, name, color string) (*models.Category, error)
	Delete(ctx context.Context, id, userID int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, userID int64, name, color string) (*models.Category, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating category: user_id=%d name=%s", userID, name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if len(name) > 100 {
		return nil, errors.NewValidationError("name", "must be 100 characters or fewer")
	}
	if color == "" {
		color = "#6366f1"
	}

	id, err := s.categoryRepo.Insert(ctx, models.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	})
	if err != nil {
		log.Error("failed to create category: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.categoryRepo.Get(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("category created: id=%d name=%s", id, name)
	return created, nil
}

func (s *categoryService) Get(ctx context.Context, id, userID int64) (*models.Category, error) {
	category, err := s.categoryRepo.Get(ctx, id, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if category == nil {
		return nil, errors.NewNotFoundError("category", id)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, userID int64) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id, userID int64, name, color string) (*models.Category, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating category: id=%d", id)

	category, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > 100 {
			return nil, errors.NewValidationError("name", "must be 100 characters or fewer")
		}
		category.Name = name
	}
	if color != "" {
		category.Color = color
	}

	if err := s.categoryRepo.Update(ctx, *category); err != nil {
		log.Error("failed to update category: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, id, userID)
}

// Delete removes a category and everything under it.
func (s *categoryService) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id, userID); err != nil {
		log.Error("failed to delete category: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("category deleted: id=%d", id)
	return nil
}
