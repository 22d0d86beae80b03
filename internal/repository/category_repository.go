// internal/repository/category_repository.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/database"
	"github.com/javajoker/storefront/internal/models"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error)
}

// DeleteIfUnreferenced removes a category only when no product points at
// it by id or by name. Names match case-insensitively, as listings do. The
// check and the delete share one transaction.
func (r *categoryRepository) DeleteIfUnreferenced(ctx context.Context, id string) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return translate(err)
		}

		var references int64
		if err := tx.Model(&models.Product{}).
			Where("category_id = ? OR LOWER(category_name) = LOWER(?)", category.ID, category.Name).
			Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return ErrReferenced
		}

		return tx.Delete(&category).Error
	})
}
