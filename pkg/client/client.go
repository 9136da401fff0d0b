// Package client sends open requests to an open-here server.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/open-here/open-here/pkg/httpclient"
	"github.com/open-here/open-here/pkg/protocol"
	"github.com/open-here/open-here/pkg/target"
)

// HTTPError is a transport failure: the server couldn't be reached, replied with a
// non-success status, or with a malformed envelope.
type HTTPError struct {
	Msg string
}

// Error converts an HTTPError to a string.
func (e *HTTPError) Error() string {
	return e.Msg
}

// ServerError is a failure reported by the server in its response envelope.
type ServerError struct {
	Err *protocol.RunError
}

// Error converts a ServerError to a string.
func (e *ServerError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying server error.
func (e *ServerError) Unwrap() error {
	return e.Err
}

// Client sends open requests to an open-here server.
type Client struct {
	http *httpclient.Client
}

// New creates a client for a server URL such as "http://127.0.0.1:9123".
func New(serverURL string, opts ...httpclient.Option) *Client {
	return &Client{
		http: httpclient.New(serverURL, opts...),
	}
}

// Open asks the server to open a target. It returns the server result string,
// which is empty unless the server runs in dry-run mode.
func (c *Client) Open(t target.OpenTarget) (string, error) {
	req, err := c.newRequest(t)
	if err != nil {
		return "", &HTTPError{Msg: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok {
			err = urlErr.Err
		}
		return "", &HTTPError{Msg: fmt.Sprintf("couldn't reach the server at %s: %s", c.http.BaseURL(), err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := resp.Status
		if body, _ := io.ReadAll(resp.Body); len(bytes.TrimSpace(body)) > 0 {
			msg = fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
		}
		return "", &HTTPError{Msg: msg}
	}

	var result protocol.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &HTTPError{Msg: fmt.Sprintf("invalid response: %s", err)}
	}
	if result.Err != nil {
		return "", &ServerError{Err: result.Err}
	}
	return *result.Ok, nil
}

// newRequest creates the HTTP request matching a target.
func (c *Client) newRequest(t target.OpenTarget) (*http.Request, error) {
	switch t := t.(type) {
	case target.URL:
		body, err := json.Marshal(protocol.URLTarget{Target: t.Target})
		if err != nil {
			return nil, err
		}
		req, err := c.http.NewRequest("GET", protocol.RouteURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	case target.Path:
		query := url.Values{}
		query.Set(protocol.FilenameParam, t.Filename)
		req, err := c.http.NewRequest("GET", protocol.RoutePath+"?"+query.Encode(), bytes.NewReader(t.Content))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		return req, nil
	default:
		return nil, fmt.Errorf("unsupported target %T", t)
	}
}
