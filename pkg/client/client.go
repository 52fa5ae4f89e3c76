// Package client is a Go client for the embedbroker HTTP API.
package client

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	origin     string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithOrigin sends the given Origin header, as a browser on that origin would.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		c.origin = origin
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type urlBuilder struct {
	base string
	path string
}

func (c *Client) url() *urlBuilder {
	return &urlBuilder{base: c.baseURL}
}

func (u *urlBuilder) setPath(path string) *urlBuilder {
	u.path = path
	return u
}

func (u *urlBuilder) build() string {
	parsed, err := url.Parse(u.base)
	if err != nil {
		return u.base + u.path
	}
	return parsed.JoinPath(u.path).String()
}
