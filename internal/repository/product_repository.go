// internal/repository/product_repository.go
package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/models"
)

var productSortColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"price":      "price",
	"sold":       "sold_count",
	"sold_count": "sold_count",
	"rating":     "rating",
	"title":      "title",
	"views":      "view_count",
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category_id = ? OR LOWER(category_name) = LOWER(?)", filter.Category, filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if filter.Page > 0 {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to count products: %w", err)
		}
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	query = query.Order(orderClause(filter.Sort, filter.Order))

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	if filter.Page == 0 {
		total = int64(len(products))
	}
	return products, total, nil
}

func orderClause(sort, order string) string {
	column, ok := productSortColumns[sort]
	if !ok {
		column = "created_at"
	}
	if strings.EqualFold(order, "asc") {
		return column + " ASC"
	}
	return column + " DESC"
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Product, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *productRepository) Totals(ctx context.Context) (models.CatalogTotals, error) {
	var totals models.CatalogTotals
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("COALESCE(SUM(price * sold_count), 0) AS net_sales, " +
			"COALESCE(SUM(view_count), 0) AS page_views, " +
			"COALESCE(SUM(order_count), 0) AS total_orders").
		Scan(&totals).Error
	if err != nil {
		return models.CatalogTotals{}, fmt.Errorf("failed to aggregate catalog totals: %w", err)
	}
	return totals, nil
}
