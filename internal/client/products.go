// internal/client/products.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/models"
)

// ProductQuery narrows a product listing. Zero values are not sent.
type ProductQuery struct {
	Category string
	Search   string
	Status   models.ProductStatus
	Sort     string
	Order    string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/products", query.values(), nil)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		product, err := decodeProduct(item)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/products", url.Values{"id": {id}}, nil)
	if err != nil {
		return nil, err
	}
	return productFromEnvelope(env)
}

// CreateProduct posts a payload as built by the product form.
func (c *Client) CreateProduct(ctx context.Context, payload map[string]interface{}) (*models.Product, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/products", nil, payload)
	if err != nil {
		return nil, err
	}
	return productFromEnvelope(env)
}

// UpdateProduct sends a partial patch. Fields absent from patch are left
// untouched on the server.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch catalog.ProductFields) (*models.Product, error) {
	env, err := c.doJSON(ctx, http.MethodPut, "/api/products", url.Values{"id": {id}}, patch.Encode())
	if err != nil {
		return nil, err
	}
	return productFromEnvelope(env)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	env, err := c.doJSON(ctx, http.MethodDelete, "/api/products", url.Values{"id": {id}}, nil)
	if err != nil {
		return err
	}
	if !env.Deleted {
		return ErrMalformedResponse
	}
	return nil
}

func productFromEnvelope(env *envelope) (*models.Product, error) {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, ErrMalformedResponse
	}
	product, err := decodeProduct(env.Data)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func decodeProduct(data []byte) (models.Product, error) {
	fields, err := catalog.DecodeProduct(data)
	if err != nil || fields.ID == nil {
		return models.Product{}, ErrMalformedResponse
	}
	return fields.Product(), nil
}

