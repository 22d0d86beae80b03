// internal/client/auth.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/javajoker/storefront/internal/models"
)

// Session is the outcome of a successful login.
type Session struct {
	User  models.PublicUser
	Token string
}

// Login verifies credentials and, on success, uses the returned token for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "email is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "password is required"}
	}

	env, err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var user models.PublicUser
	if len(env.User) == 0 || json.Unmarshal(env.User, &user) != nil || user.ID == "" {
		return nil, ErrMalformedResponse
	}

	if env.Token != "" {
		c.SetToken(env.Token)
	}
	return &Session{User: user, Token: env.Token}, nil
}

// CreateUser registers an account. role may be empty for the default.
func (c *Client) CreateUser(ctx context.Context, name, email, password string, role models.Role) (*models.PublicUser, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/users", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     string(role),
	})
	if err != nil {
		return nil, err
	}

	var user models.PublicUser
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Stats reads the dashboard figures.
func (c *Client) Stats(ctx context.Context) (models.DashboardStats, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/stats", nil, nil)
	if err != nil {
		return models.DashboardStats{}, err
	}

	var stats models.DashboardStats
	if err := decodeData(env, &stats); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
