package httpclient

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// A Client is an HTTP client bound to a base URL.
// It keeps a single *http.Client so that connections are pooled.
type Client struct {
	baseURL    string
	baseClient *http.Client
	logger     *logrus.Logger
}

// Option is a functional option for a Client.
type Option func(*Client)

// Timeout sets the timeout for HTTP requests, 0 means no timeout.
func Timeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.baseClient.Timeout = timeout
	}
}

// Transport sets the round tripper used by the client.
func Transport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.baseClient.Transport = transport
	}
}

// Logger sets the logger for HTTP requests and responses.
func Logger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a new HTTP client for a given base URL.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		baseClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest returns a new Request given a method, path, and optional body.
// The path is appended to the base URL and may contain a query string.
func (c *Client) NewRequest(method, path string, body io.Reader) (*http.Request, error) {
	return http.NewRequest(method, c.baseURL+path, body)
}

// Do sends an HTTP request and returns an HTTP response.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.logger != nil {
		c.logger.Debugf("Sent request: %s %s", req.Method, req.URL)
	}
	resp, err := c.baseClient.Do(req)
	if err == nil && c.logger != nil {
		c.logger.Debugf("Received response: %s", resp.Status)
	}
	return resp, err
}
