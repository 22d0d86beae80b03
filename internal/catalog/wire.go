// internal/catalog/wire.go
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/javajoker/storefront/internal/models"
)

// ErrMalformedPayload is returned when a product body is not a JSON object
// or a field holds a value of the wrong shape.
var ErrMalformedPayload = errors.New("malformed product payload")

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ProductFields is the canonical product shape exchanged at the wire
// boundary. Nil fields were absent from the payload.
type ProductFields struct {
	ID                *string
	Title             *string
	Description       *string
	Image             *string
	Images            *[]string
	DescriptionImages *[]string
	VideoURL          *string
	Price             *float64
	OriginalPrice     *float64
	Discount          *float64
	CategoryID        *string
	CategoryName      *string
	Status            *string
	SoldCount         *int64
	OrderCount        *int64
	Rating            *float64
	ViewCount         *int64
	CreatedAt         *time.Time
	UpdatedAt         *time.Time
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindFloat
	kindInt
	kindList
	kindTime
)

// wireField lists the accepted names for one field. The first name is the
// camelCase alias and the second the snake_case alias; both are emitted.
type wireField struct {
	names []string
	kind  fieldKind
	ptr   func(f *ProductFields) interface{}
}

var productWireFields = []wireField{
	{[]string{"id"}, kindString, func(f *ProductFields) interface{} { return &f.ID }},
	{[]string{"title"}, kindString, func(f *ProductFields) interface{} { return &f.Title }},
	{[]string{"description"}, kindString, func(f *ProductFields) interface{} { return &f.Description }},
	{[]string{"image"}, kindString, func(f *ProductFields) interface{} { return &f.Image }},
	{[]string{"images"}, kindList, func(f *ProductFields) interface{} { return &f.Images }},
	{[]string{"descriptionImages", "description_images"}, kindList, func(f *ProductFields) interface{} { return &f.DescriptionImages }},
	{[]string{"videoUrl", "video_url", "videoURL"}, kindString, func(f *ProductFields) interface{} { return &f.VideoURL }},
	{[]string{"price"}, kindFloat, func(f *ProductFields) interface{} { return &f.Price }},
	{[]string{"originalPrice", "original_price"}, kindFloat, func(f *ProductFields) interface{} { return &f.OriginalPrice }},
	{[]string{"discount"}, kindFloat, func(f *ProductFields) interface{} { return &f.Discount }},
	{[]string{"categoryId", "category_id"}, kindString, func(f *ProductFields) interface{} { return &f.CategoryID }},
	{[]string{"category", "category_name", "categoryName"}, kindString, func(f *ProductFields) interface{} { return &f.CategoryName }},
	{[]string{"status"}, kindString, func(f *ProductFields) interface{} { return &f.Status }},
	{[]string{"sold", "sold_count", "soldCount"}, kindInt, func(f *ProductFields) interface{} { return &f.SoldCount }},
	{[]string{"orderCount", "order_count"}, kindInt, func(f *ProductFields) interface{} { return &f.OrderCount }},
	{[]string{"rating"}, kindFloat, func(f *ProductFields) interface{} { return &f.Rating }},
	{[]string{"viewCount", "view_count"}, kindInt, func(f *ProductFields) interface{} { return &f.ViewCount }},
	{[]string{"createdAt", "created_at"}, kindTime, func(f *ProductFields) interface{} { return &f.CreatedAt }},
	{[]string{"updatedAt", "updated_at"}, kindTime, func(f *ProductFields) interface{} { return &f.UpdatedAt }},
}

// DecodeProduct reads a product body written with camelCase names,
// snake_case names, or a mix of both. Numbers may arrive as strings and
// arrays as serialized JSON text. JSON null leaves a field unset.
func DecodeProduct(data []byte) (ProductFields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ProductFields{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var fields ProductFields
	for _, wf := range productWireFields {
		value, name, ok := lookup(raw, wf.names)
		if !ok {
			continue
		}
		if err := decodeField(wf.kind, value, wf.ptr(&fields)); err != nil {
			return ProductFields{}, fmt.Errorf("%w: field %q: %v", ErrMalformedPayload, name, err)
		}
	}
	return fields, nil
}

func lookup(raw map[string]json.RawMessage, names []string) (json.RawMessage, string, bool) {
	for _, name := range names {
		value, ok := raw[name]
		if !ok || string(value) == "null" {
			continue
		}
		return value, name, true
	}
	return nil, "", false
}

func decodeField(kind fieldKind, value json.RawMessage, target interface{}) error {
	switch kind {
	case kindString:
		s, err := decodeString(value)
		if err != nil {
			return err
		}
		*target.(**string) = &s
	case kindFloat:
		n, err := decodeFloat(value)
		if err != nil {
			return err
		}
		*target.(**float64) = &n
	case kindInt:
		n, err := decodeFloat(value)
		if err != nil {
			return err
		}
		i := int64(n)
		*target.(**int64) = &i
	case kindList:
		list, err := decodeList(value)
		if err != nil {
			return err
		}
		*target.(**[]string) = &list
	case kindTime:
		s, err := decodeString(value)
		if err != nil {
			return err
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		*target.(**time.Time) = &ts
	}
	return nil
}

func decodeString(value json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		return "", errors.New("expected a string")
	}
	return n.String(), nil
}

func decodeFloat(value json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(value, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, errors.New("expected a number")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("expected a number")
	}
	return n, nil
}

func decodeList(value json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(value, &list); err == nil {
		return []string(models.ParseStringList(string(value))), nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, errors.New("expected an array of strings")
	}
	return []string(models.ParseStringList(s)), nil
}

// Encode emits every set field under both its camelCase and snake_case
// names.
func (f ProductFields) Encode() map[string]interface{} {
	out := make(map[string]interface{}, len(productWireFields)*2)
	for _, wf := range productWireFields {
		value, ok := encodeField(wf.kind, wf.ptr(&f))
		if !ok {
			continue
		}
		for _, name := range wf.names[:min(2, len(wf.names))] {
			out[name] = value
		}
	}
	return out
}

func encodeField(kind fieldKind, target interface{}) (interface{}, bool) {
	switch kind {
	case kindString:
		if p := *target.(**string); p != nil {
			return *p, true
		}
	case kindFloat:
		if p := *target.(**float64); p != nil {
			return *p, true
		}
	case kindInt:
		if p := *target.(**int64); p != nil {
			return *p, true
		}
	case kindList:
		if p := *target.(**[]string); p != nil {
			if *p == nil {
				return []string{}, true
			}
			return *p, true
		}
	case kindTime:
		if p := *target.(**time.Time); p != nil {
			return p.UTC().Format(TimestampLayout), true
		}
	}
	return nil, false
}

// FieldsFromProduct converts a stored product into its wire shape.
func FieldsFromProduct(p *models.Product) ProductFields {
	status := string(p.Status)
	images := []string(p.Images)
	descriptionImages := []string(p.DescriptionImages)
	fields := ProductFields{
		ID:                &p.ID,
		Title:             &p.Title,
		Description:       &p.Description,
		Image:             &p.Image,
		Images:            &images,
		DescriptionImages: &descriptionImages,
		Price:             &p.Price,
		OriginalPrice:     &p.OriginalPrice,
		Discount:          &p.Discount,
		CategoryID:        &p.CategoryID,
		CategoryName:      &p.CategoryName,
		Status:            &status,
		SoldCount:         &p.SoldCount,
		OrderCount:        &p.OrderCount,
		Rating:            &p.Rating,
		ViewCount:         &p.ViewCount,
		CreatedAt:         &p.CreatedAt,
		UpdatedAt:         &p.UpdatedAt,
	}
	if p.VideoURL != "" {
		fields.VideoURL = &p.VideoURL
	}
	return fields
}

// EncodeProduct renders a stored product with both naming conventions.
func EncodeProduct(p *models.Product) map[string]interface{} {
	return FieldsFromProduct(p).Encode()
}

// EncodeProducts renders a list, never returning nil.
func EncodeProducts(products []models.Product) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		out = append(out, EncodeProduct(&products[i]))
	}
	return out
}

// Product builds a product from decoded fields. Absent fields stay zero.
func (f ProductFields) Product() models.Product {
	p := models.Product{
		Title:             deref(f.Title),
		Description:       deref(f.Description),
		Image:             deref(f.Image),
		Images:            models.StringList(derefList(f.Images)),
		DescriptionImages: models.StringList(derefList(f.DescriptionImages)),
		VideoURL:          deref(f.VideoURL),
		CategoryID:        deref(f.CategoryID),
		CategoryName:      deref(f.CategoryName),
		Status:            models.ProductStatus(deref(f.Status)),
	}
	p.ID = deref(f.ID)
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.OriginalPrice != nil {
		p.OriginalPrice = *f.OriginalPrice
	}
	if f.Discount != nil {
		p.Discount = *f.Discount
	}
	if f.SoldCount != nil {
		p.SoldCount = *f.SoldCount
	}
	if f.OrderCount != nil {
		p.OrderCount = *f.OrderCount
	}
	if f.Rating != nil {
		p.Rating = *f.Rating
	}
	if f.ViewCount != nil {
		p.ViewCount = *f.ViewCount
	}
	if f.CreatedAt != nil {
		p.CreatedAt = *f.CreatedAt
	}
	if f.UpdatedAt != nil {
		p.UpdatedAt = *f.UpdatedAt
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefList(l *[]string) []string {
	if l == nil {
		return []string{}
	}
	return *l
}
