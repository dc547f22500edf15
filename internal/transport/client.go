// Package transport provides the authenticated HTTP client used to talk
// to one Close organization's API. One client instance is bound to one
// environment's credential; the sync layer holds two (source and target).
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/closeops/schemasync/pkg/errors"
)

// DefaultBaseURL is the Close REST API root.
const DefaultBaseURL = "https://api.close.com/api/v1/"

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Client provides HTTP client functionality with authentication against
// a single environment.
type Client struct {
	http    *http.Client
	auth    Authenticator
	apiKey  string
	baseURL string
	env     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithAuthenticator replaces the authentication scheme.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// New creates a transport client for one environment. env is a label
// ("production", "development") used only in errors and logs.
func New(env, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    &BasicAuth{},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		env:     env,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Env returns the environment label this client is bound to.
func (c *Client) Env() string {
	return c.env
}

// Get performs a GET request against a resource path relative to the API
// root.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + strings.TrimPrefix(path, "/")
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, err
	}

	c.auth.Apply(req, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Env:      c.env,
			Message:  "request failed",
			Endpoint: path,
			Err:      err,
		}
	}
	return resp, nil
}
