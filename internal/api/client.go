package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/motostats/internal/motogp"
)

const (
	// DefaultBaseURL is where the backend listens in a local setup.
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	// DefaultTimeout is the ceiling applied to every request.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "motostats/0.1"
	maxErrorBody     = 64 << 10
)

// Options is the complete, immutable configuration of a Client. New copies
// everything it keeps, so callers may reuse or mutate their Options value
// afterwards without affecting the client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Headers are sent with every request. Content-Type and Accept default to
	// application/json.
	Headers http.Header

	// RequestInterceptors run in order before each request is sent. An empty
	// chain behaves as a single pass-through.
	RequestInterceptors []RequestInterceptor
	// ResponseInterceptors run in order after each attempt.
	ResponseInterceptors []ResponseInterceptor

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Client talks to the MotoGP Stats HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	headers   http.Header
	userAgent string
	timeout   time.Duration
	reqChain  []RequestInterceptor
	respChain []ResponseInterceptor
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	headers := opts.Headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", "application/json")
	}
	if headers.Get("Accept") == "" {
		headers.Set("Accept", "application/json")
	}

	reqChain := append([]RequestInterceptor(nil), opts.RequestInterceptors...)
	if len(reqChain) == 0 {
		reqChain = []RequestInterceptor{PassThrough}
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		headers:   headers,
		userAgent: userAgent,
		timeout:   timeout,
		reqChain:  reqChain,
		respChain: append([]ResponseInterceptor(nil), opts.ResponseInterceptors...),
	}, nil
}

// BaseURL returns the resolved API base.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// Timeout returns the per-request ceiling.
func (c *Client) Timeout() time.Duration {
	if c == nil {
		return DefaultTimeout
	}
	return c.timeout
}

// Get performs exactly one GET against path (relative to the base URL) and
// decodes the JSON body into dest. Failures pass through the response
// interceptors and are returned as they left the chain; there are no retries.
func (c *Client) Get(ctx context.Context, path string, dest any) error {
	if c == nil {
		return &LocalError{Op: "get", Err: errors.New("client is nil")}
	}
	req, resp, err := c.get(ctx, path, dest)
	for _, intercept := range c.respChain {
		err = intercept(req, resp, err)
	}
	return err
}

func (c *Client) get(ctx context.Context, path string, dest any) (*http.Request, *http.Response, error) {
	reqURL := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, nil, &LocalError{Op: "create request", Err: err}
	}
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	req.Header.Set("User-Agent", c.userAgent)

	for _, intercept := range c.reqChain {
		next, err := intercept(req)
		if err != nil {
			return req, nil, &LocalError{Op: "intercept request", Err: err}
		}
		if next != nil {
			req = next
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return req, nil, &NetworkError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return req, resp, newStatusError(req, resp)
	}
	if dest == nil {
		return req, resp, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return req, resp, &LocalError{Op: "decode response", Err: err}
	}
	return req, resp, nil
}

func (c *Client) resolve(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	return &u
}

func newStatusError(req *http.Request, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	var apiErr motogp.APIError
	if json.Unmarshal(body, &apiErr) == nil {
		se.Detail = apiErr.Detail
		return se
	}
	// Validation errors carry a list of objects rather than a string.
	var raw struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &raw) == nil && len(raw.Detail) > 0 {
		se.Detail = string(raw.Detail)
	}
	return se
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
