// Package client implements a typed HTTP client for the sales-management
// backend REST API. All calls go through a single request gateway that
// normalizes error handling and JSON decoding.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/decred/slog"
)

// defaultRequestTimeout bounds individual API calls when the caller does not
// provide its own http client.
const defaultRequestTimeout = 10 * time.Second

// Config holds the client configuration.
type Config struct {
	// BaseURL is the fixed prefix for all API calls, e.g.
	// "http://127.0.0.1:8080/sales/api".
	BaseURL string

	// HTTPClient is the underlying http client. When nil, a client with a
	// default timeout is used.
	HTTPClient *http.Client

	// Log is used to log request failures before they are returned to the
	// caller. When nil, logging is disabled.
	Log slog.Logger
}

// Client performs requests against the backend API.
type Client struct {
	baseURL string
	hc      *http.Client
	log     slog.Logger
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: empty base URL")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultRequestTimeout}
	}
	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      hc,
		log:     log,
	}, nil
}

// request performs an HTTP call and returns the raw JSON payload of the
// response. A nil payload with a nil error means the server returned an empty
// body or one without a JSON content type; that is an absence, not an error.
//
// The request carries a JSON content type header by default; entries in hdr
// override it. Non-2xx statuses return an *HTTPError with the status code and
// a truncated body snippet.
func (c *Client) request(ctx context.Context, method, path string,
	body interface{}, hdr http.Header) (json.RawMessage, error) {

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range hdr {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Errorf("%s %s failed: %v", method, path, err)
		return nil, err
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		c.log.Errorf("%s %s: unable to read response: %v", method, path, err)
		return nil, fmt.Errorf("unable to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{
			Status: resp.StatusCode,
			Body:   limitStr(string(raw), maxErrBody),
		}
		c.log.Errorf("%s %s: %v", method, path, httpErr)
		return nil, httpErr
	}

	ct := resp.Header.Get("Content-Type")
	if len(raw) == 0 || !strings.Contains(ct, "application/json") {
		return nil, nil
	}
	return raw, nil
}

// do runs the request and, when the server returned a JSON payload and res is
// non-nil, decodes the payload into res. Malformed payloads return a
// *DecodeError carrying the truncated raw text.
func (c *Client) do(ctx context.Context, method, path string,
	body, res interface{}) error {

	raw, err := c.request(ctx, method, path, body, nil)
	if err != nil || raw == nil || res == nil {
		return err
	}
	if err := json.Unmarshal(raw, res); err != nil {
		decErr := &DecodeError{Raw: limitStr(string(raw), maxErrBody), Err: err}
		c.log.Errorf("%s %s: %v", method, path, decErr)
		return decErr
	}
	return nil
}
