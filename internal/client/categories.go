// internal/client/categories.go
package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/javajoker/storefront/internal/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := decodeData(env, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, icon, image string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "category name is required"}
	}

	env, err := c.doJSON(ctx, http.MethodPost, "/api/categories", nil, map[string]string{
		"name":  name,
		"icon":  icon,
		"image": image,
	})
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := decodeData(env, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	env, err := c.doJSON(ctx, http.MethodDelete, "/api/categories", url.Values{"id": {id}}, nil)
	if err != nil {
		return err
	}
	if !env.Deleted {
		return ErrMalformedResponse
	}
	return nil
}
