// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter)
	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}
	return product, args.Error(1)
}

func (m *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Product, error) {
	args := m.Called(ctx, id, updates)
	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}
	return product, args.Error(1)
}

func (m *ProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) Totals(ctx context.Context) (models.CatalogTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CatalogTotals), args.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	var categories []models.Category
	if v := args.Get(0); v != nil {
		categories = v.([]models.Category)
	}
	return categories, args.Error(1)
}

func (m *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	var category *models.Category
	if v := args.Get(0); v != nil {
		category = v.(*models.Category)
	}
	return category, args.Error(1)
}

func (m *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	var category *models.Category
	if v := args.Get(0); v != nil {
		category = v.(*models.Category)
	}
	return category, args.Error(1)
}

func (m *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) DeleteIfUnreferenced(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

var (
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
)
