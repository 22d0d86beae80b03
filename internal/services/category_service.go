// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/events"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
	publisher  events.Publisher
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
}

func NewCategoryService(categories repository.CategoryRepository, publisher events.Publisher) *CategoryService {
	return &CategoryService{categories: categories, publisher: publisher}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	name := sanitizeText(req.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &models.Category{
		Name:  name,
		Icon:  strings.TrimSpace(req.Icon),
		Image: strings.TrimSpace(req.Image),
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.CategoryCreated, category.ID, category.Name))
	return category, nil
}

// Delete refuses to remove a category that products still reference.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.DeleteIfUnreferenced(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrCategoryInUse
		default:
			return fmt.Errorf("failed to delete category: %w", err)
		}
	}

	s.publish(ctx, events.NewEvent(events.CategoryDeleted, id, ""))
	return nil
}

func (s *CategoryService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithField("event", event.Type).Warn("Failed to publish catalog event")
	}
}
