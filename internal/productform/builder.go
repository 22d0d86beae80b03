// internal/productform/builder.go
package productform

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/client"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/upload"
)

// Creator persists a product payload.
type Creator interface {
	CreateProduct(ctx context.Context, payload map[string]interface{}) (*models.Product, error)
}

// Form holds what the admin typed. Price and Discount keep the raw input
// so validation can report what was wrong with it.
type Form struct {
	Title        string
	Description  string
	Price        string
	Discount     string
	CategoryID   string
	CategoryName string
	Media        upload.Media
}

// Builder turns a Form into a create-product payload.
type Builder struct {
	mu      sync.Mutex
	form    Form
	creator Creator
	now     func() time.Time
}

func NewBuilder(creator Creator) *Builder {
	return &Builder{creator: creator, now: time.Now}
}

// Edit applies fn to the form under the builder's lock.
func (b *Builder) Edit(fn func(f *Form)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.form)
}

// Form returns a copy of the current form.
func (b *Builder) Form() Form {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := b.form
	f.Media.Images = append([]string(nil), b.form.Media.Images...)
	f.Media.DescriptionImages = append([]string(nil), b.form.Media.DescriptionImages...)
	return f
}

func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = Form{}
}

// Validate checks the form without touching the network.
func (b *Builder) Validate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _, err := b.form.parse()
	return err
}

// Payload validates the form and renders it with camelCase and snake_case
// names for every field.
func (b *Builder) Payload() (map[string]interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.payload()
}

func (b *Builder) payload() (map[string]interface{}, error) {
	price, discount, err := b.form.parse()
	if err != nil {
		return nil, err
	}

	f := b.form
	title := strings.TrimSpace(f.Title)
	description := strings.TrimSpace(f.Description)
	images := append([]string{}, f.Media.Images...)
	descriptionImages := append([]string{}, f.Media.DescriptionImages...)
	image := catalog.MainImage(images)
	originalPrice := catalog.OriginalPrice(price, discount)
	categoryName := strings.TrimSpace(f.CategoryName)
	status := string(models.ProductStatusOnline)
	var zero int64
	rating := models.DefaultRating
	createdAt := b.now().UTC()

	fields := catalog.ProductFields{
		Title:             &title,
		Description:       &description,
		Image:             &image,
		Images:            &images,
		DescriptionImages: &descriptionImages,
		Price:             &price,
		OriginalPrice:     &originalPrice,
		Discount:          &discount,
		CategoryName:      &categoryName,
		Status:            &status,
		SoldCount:         &zero,
		OrderCount:        &zero,
		Rating:            &rating,
		CreatedAt:         &createdAt,
	}
	if video := strings.TrimSpace(f.Media.VideoURL); video != "" {
		fields.VideoURL = &video
	}
	if id := strings.TrimSpace(f.CategoryID); id != "" {
		fields.CategoryID = &id
	}
	return fields.Encode(), nil
}

// Submit sends the payload to the creator. The form is cleared only after
// the creator confirms; on any failure it is left as it was.
func (b *Builder) Submit(ctx context.Context) (bool, error) {
	b.mu.Lock()
	payload, err := b.payload()
	b.mu.Unlock()
	if err != nil {
		return false, err
	}

	product, err := b.creator.CreateProduct(ctx, payload)
	if err != nil {
		logrus.WithError(err).WithField("title", payload["title"]).Warn("Product submission failed")
		return false, err
	}

	logrus.WithField("product_id", product.ID).Info("Product created")
	b.Reset()
	return true, nil
}

func (f Form) parse() (price, discount float64, err error) {
	if strings.TrimSpace(f.Title) == "" {
		return 0, 0, &client.ValidationError{Field: "title", Reason: "title is required"}
	}

	price, perr := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if perr != nil || !(price > 0) || math.IsInf(price, 1) {
		return 0, 0, &client.ValidationError{Field: "price", Reason: "price must be a positive number"}
	}

	if catalog.MainImage(f.Media.Images) == "" {
		return 0, 0, &client.ValidationError{Field: "images", Reason: "at least one image is required"}
	}

	if strings.TrimSpace(f.CategoryName) == "" && strings.TrimSpace(f.CategoryID) == "" {
		return 0, 0, &client.ValidationError{Field: "category", Reason: "choose a category"}
	}

	if raw := strings.TrimSpace(f.Discount); raw != "" {
		d, derr := strconv.ParseFloat(raw, 64)
		if derr != nil || !catalog.ValidDiscount(d) {
			return 0, 0, &client.ValidationError{Field: "discount", Reason: "discount must be between 0 and 100"}
		}
		discount = d
	}
	return price, discount, nil
}
