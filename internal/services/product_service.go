// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/events"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

const backgroundTimeout = 5 * time.Second

type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.Cache
	publisher  events.Publisher
	cacheTTL   time.Duration
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	c cache.Cache,
	publisher events.Publisher,
	cacheTTL time.Duration,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		cache:      c,
		publisher:  publisher,
		cacheTTL:   cacheTTL,
	}
}

// List returns matching products. The plain newest-first listing the
// storefront opens with is served from the cache.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	cacheable := isDefaultListing(filter)
	if cacheable {
		var cached []models.Product
		if found, err := s.cache.Get(ctx, cache.ProductListKey, &cached); err != nil {
			logrus.WithError(err).WithField("key", cache.ProductListKey).Warn("Product list cache read failed")
		} else if found && cached != nil {
			return cached, int64(len(cached)), nil
		}
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	if cacheable {
		if err := s.cache.Set(ctx, cache.ProductListKey, products, s.cacheTTL); err != nil {
			logrus.WithError(err).WithField("key", cache.ProductListKey).Warn("Product list cache write failed")
		}
	}
	return products, total, nil
}

func isDefaultListing(f repository.ProductFilter) bool {
	return f.Category == "" && f.Search == "" && f.Status == "" && f.Page == 0 &&
		(f.Sort == "" || f.Sort == "created_at" || f.Sort == "createdAt") &&
		(f.Order == "" || strings.EqualFold(f.Order, "desc"))
}

// Get returns one product and counts the view in the background.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Product cache read failed")
	} else if found {
		s.recordView(id)
		return &cached, nil
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Product cache write failed")
	}

	s.recordView(id)
	return product, nil
}

func (s *ProductService) recordView(id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		if err := s.products.IncrementViews(ctx, id); err != nil {
			logrus.WithError(err).WithField("product_id", id).Warn("Failed to record product view")
		}
	}()
}

func (s *ProductService) Create(ctx context.Context, fields catalog.ProductFields) (*models.Product, error) {
	title := sanitizeText(deref(fields.Title))
	price := derefFloat(fields.Price)
	images := models.StringList(derefList(fields.Images)).Truncate(models.MaxGalleryImages)
	image := strings.TrimSpace(deref(fields.Image))
	if image == "" {
		image = catalog.MainImage(images)
	}

	if title == "" || price <= 0 || image == "" {
		return nil, ErrMissingProductFields
	}

	discount := derefFloat(fields.Discount)
	if !catalog.ValidDiscount(discount) {
		return nil, ErrInvalidDiscount
	}

	status := models.ProductStatusOnline
	if fields.Status != nil && *fields.Status != "" {
		status = models.ProductStatus(*fields.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	categoryID, categoryName, err := s.resolveCategory(ctx, deref(fields.CategoryID), deref(fields.CategoryName))
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		images = models.StringList{image}
	}

	product := &models.Product{
		Title:             title,
		Description:       sanitizeText(deref(fields.Description)),
		Image:             image,
		Images:            images,
		DescriptionImages: models.StringList(derefList(fields.DescriptionImages)).Truncate(models.MaxDescriptionImages),
		VideoURL:          strings.TrimSpace(deref(fields.VideoURL)),
		Price:             price,
		OriginalPrice:     catalog.OriginalPrice(price, discount),
		Discount:          discount,
		CategoryID:        categoryID,
		CategoryName:      categoryName,
		Status:            status,
		SoldCount:         derefInt(fields.SoldCount),
		OrderCount:        derefInt(fields.OrderCount),
		Rating:            models.DefaultRating,
	}
	if fields.Rating != nil && *fields.Rating > 0 {
		product.Rating = *fields.Rating
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx, product.ID)
	s.publish(ctx, events.NewEvent(events.ProductCreated, product.ID, product.Title))
	return product, nil
}

// Update applies a partial patch. Only fields present in the payload are
// written; updated_at is always refreshed.
func (s *ProductService) Update(ctx context.Context, id string, fields catalog.ProductFields) (*models.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	updates := map[string]interface{}{}

	if fields.Title != nil {
		title := sanitizeText(*fields.Title)
		if title == "" {
			return nil, ErrMissingProductFields
		}
		updates["title"] = title
	}
	if fields.Description != nil {
		updates["description"] = sanitizeText(*fields.Description)
	}

	if fields.Images != nil || fields.Image != nil {
		image, images, err := mergeImages(existing, fields)
		if err != nil {
			return nil, err
		}
		updates["image"] = image
		if fields.Images != nil {
			updates["images"] = images
		}
	}
	if fields.DescriptionImages != nil {
		updates["description_images"] = models.StringList(*fields.DescriptionImages).Truncate(models.MaxDescriptionImages)
	}
	if fields.VideoURL != nil {
		updates["video_url"] = strings.TrimSpace(*fields.VideoURL)
	}

	if fields.Price != nil || fields.Discount != nil {
		price, discount := existing.Price, existing.Discount
		if fields.Price != nil {
			price = *fields.Price
		}
		if fields.Discount != nil {
			discount = *fields.Discount
		}
		if price <= 0 {
			return nil, ErrMissingProductFields
		}
		if !catalog.ValidDiscount(discount) {
			return nil, ErrInvalidDiscount
		}
		updates["price"] = price
		updates["discount"] = discount
		updates["original_price"] = catalog.OriginalPrice(price, discount)
	}

	if fields.CategoryID != nil || fields.CategoryName != nil {
		categoryID, categoryName, err := s.resolveCategory(ctx, deref(fields.CategoryID), deref(fields.CategoryName))
		if err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
		updates["category_name"] = categoryName
	}

	if fields.Status != nil {
		status := models.ProductStatus(*fields.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		updates["status"] = status
	}
	if fields.SoldCount != nil {
		updates["sold_count"] = *fields.SoldCount
	}
	if fields.OrderCount != nil {
		updates["order_count"] = *fields.OrderCount
	}
	if fields.Rating != nil {
		updates["rating"] = *fields.Rating
	}

	updates["updated_at"] = time.Now()

	product, err := s.products.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.NewEvent(events.ProductUpdated, product.ID, product.Title))
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.NewEvent(events.ProductDeleted, id, ""))
	return nil
}

// resolveCategory looks the category up by id, then by name. An unknown
// reference is kept as given so products can be filed before their
// category exists.
func (s *ProductService) resolveCategory(ctx context.Context, id, name string) (string, string, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)

	if id != "" {
		category, err := s.categories.GetByID(ctx, id)
		switch {
		case err == nil:
			return category.ID, category.Name, nil
		case !errors.Is(err, repository.ErrNotFound):
			return "", "", fmt.Errorf("failed to resolve category: %w", err)
		}
	}

	if name != "" {
		category, err := s.categories.GetByName(ctx, name)
		switch {
		case err == nil:
			return category.ID, category.Name, nil
		case !errors.Is(err, repository.ErrNotFound):
			return "", "", fmt.Errorf("failed to resolve category: %w", err)
		}
	}

	return id, name, nil
}

// mergeImages applies an image patch on top of the stored product. The
// result always has a main image; a blank one falls back to the gallery.
func mergeImages(existing *models.Product, fields catalog.ProductFields) (string, models.StringList, error) {
	images := existing.Images
	if fields.Images != nil {
		images = models.StringList(*fields.Images).Truncate(models.MaxGalleryImages)
	}

	image := existing.Image
	switch {
	case fields.Image != nil:
		image = strings.TrimSpace(*fields.Image)
	case len(images) > 0 && !contains(images, image):
		image = ""
	}
	if image == "" {
		image = catalog.MainImage(images)
	}
	if image == "" {
		return "", nil, ErrMissingProductFields
	}

	if len(images) == 0 {
		images = models.StringList{image}
	}
	return image, images, nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id), cache.ProductListKey, cache.StatsKey); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Failed to invalidate product cache")
	}
}

func (s *ProductService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithField("event", event.Type).Warn("Failed to publish catalog event")
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func derefList(l *[]string) []string {
	if l == nil {
		return nil
	}
	return *l
}
