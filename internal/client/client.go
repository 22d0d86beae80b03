// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 30 * time.Second
	// uploadTimeout covers a full-size video on a slow mobile link.
	uploadTimeout = 10 * time.Minute
)

// Client talks to the storefront API. It never retries.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.uploadClient = withMinTimeout(c.httpClient, uploadTimeout)
	return c
}

// withMinTimeout copies hc with its overall timeout raised to at least floor.
// A zero timeout means none and is kept.
func withMinTimeout(hc *http.Client, floor time.Duration) *http.Client {
	if hc.Timeout == 0 || hc.Timeout >= floor {
		return hc
	}
	upload := *hc
	upload.Timeout = floor
	return &upload
}

// SetToken sets the bearer token sent with every request. An empty token
// clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope is the response shape shared by every endpoint. Login puts the
// user beside data rather than inside it.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Deleted bool            `json:"deleted"`
	User    json.RawMessage `json:"user"`
	Token   string          `json:"token"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(c.httpClient, req)
}

func (c *Client) do(hc *http.Client, req *http.Request) (*envelope, error) {
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": req.Method,
			"url":    req.URL.Redacted(),
		}).Warn("Request failed")
		return nil, ErrNetwork
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logrus.WithError(err).WithField("url", req.URL.Redacted()).Warn("Failed to read response")
		return nil, ErrNetwork
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Success == nil {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    req.URL.Redacted(),
		}).Warn("Response is not an envelope")
		return nil, ErrMalformedResponse
	}

	if !*env.Success {
		if env.Error == "" {
			return nil, ErrMalformedResponse
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Error}
	}
	return &env, nil
}

// decodeData unmarshals the data field, treating an absent field as
// malformed.
func decodeData(env *envelope, out interface{}) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
