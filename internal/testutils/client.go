package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DefaultContentType is used when a body is sent without a content type.
const DefaultContentType = "application/json"

// Client issues requests on behalf of one simulated user. Headers and
// cookies are attached to every request; cookies set by responses are kept,
// so refresh and session cookies carry over between calls. A Client may be
// shared by parallel tests.
type Client struct {
	transport *Transport
	http      *http.Client

	mu      sync.Mutex
	headers map[string]string
	cookies map[string]string

	Email            string
	UID              string
	Password         string
	OrganizationID   uuid.UUID
	OrganizationName string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHeaders sets the initial request headers.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) { c.headers = maps.Clone(headers) }
}

// WithCookies sets the initial cookies.
func WithCookies(cookies map[string]string) ClientOption {
	return func(c *Client) { c.cookies = maps.Clone(cookies) }
}

// WithEmail records the user's email.
func WithEmail(email string) ClientOption {
	return func(c *Client) { c.Email = email }
}

// WithUID records the user's id.
func WithUID(uid string) ClientOption {
	return func(c *Client) { c.UID = uid }
}

// WithPassword records the user's password.
func WithPassword(password string) ClientOption {
	return func(c *Client) { c.Password = password }
}

// WithOrganizationID records the user's organization id.
func WithOrganizationID(id uuid.UUID) ClientOption {
	return func(c *Client) { c.OrganizationID = id }
}

// WithOrganizationName records the user's organization name.
func WithOrganizationName(name string) ClientOption {
	return func(c *Client) { c.OrganizationName = name }
}

// NewClient creates a Client sending through transport.
func NewClient(transport *Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: transport,
		http: &http.Client{
			Transport: transport.RoundTripper,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		headers: map[string]string{},
		cookies: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.headers == nil {
		c.headers = map[string]string{}
	}
	if c.cookies == nil {
		c.cookies = map[string]string{}
	}
	return c
}

// Headers returns a copy of the current headers.
func (c *Client) Headers() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.headers)
}

// SetHeaders replaces the headers.
func (c *Client) SetHeaders(headers map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers = maps.Clone(headers)
	if c.headers == nil {
		c.headers = map[string]string{}
	}
}

// Cookies returns a copy of the current cookies.
func (c *Client) Cookies() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.cookies)
}

// SetCookies replaces the cookies.
func (c *Client) SetCookies(cookies map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookies = maps.Clone(cookies)
	if c.cookies == nil {
		c.cookies = map[string]string{}
	}
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, t TestingT, path string) *ResponseChecker {
	t.Helper()
	return c.Do(ctx, t, http.MethodGet, path, nil, "")
}

// Post sends a POST request. An empty contentType means DefaultContentType.
func (c *Client) Post(ctx context.Context, t TestingT, path string, body any, contentType string) *ResponseChecker {
	t.Helper()
	return c.Do(ctx, t, http.MethodPost, path, body, contentType)
}

// Patch sends a PATCH request. An empty contentType means DefaultContentType.
func (c *Client) Patch(ctx context.Context, t TestingT, path string, body any, contentType string) *ResponseChecker {
	t.Helper()
	return c.Do(ctx, t, http.MethodPatch, path, body, contentType)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, t TestingT, path string) *ResponseChecker {
	t.Helper()
	return c.Do(ctx, t, http.MethodDelete, path, nil, "")
}

// Do performs one request/response exchange. []byte and io.Reader bodies are
// sent as is; any other non-nil body is JSON encoded.
func (c *Client) Do(
	ctx context.Context,
	t TestingT,
	method, path string,
	body any,
	contentType string,
) *ResponseChecker {
	t.Helper()

	reader, err := encodeBody(body)
	if err != nil {
		fail(t, "encode %s %s body: %v", method, path, err)
		return failedExchange(t)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.transport.URL(path), reader)
	if err != nil {
		fail(t, "build %s %s request: %v", method, path, err)
		return failedExchange(t)
	}
	if body != nil {
		if contentType == "" {
			contentType = DefaultContentType
		}
		req.Header.Set("Content-Type", contentType)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		fail(t, "%s %s failed: %v", method, path, err)
		return failedExchange(t)
	}

	c.storeCookies(resp.Cookies())
	return NewResponseChecker(t, resp)
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(raw), nil
	}
}

func (c *Client) decorate(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	names := make([]string, 0, len(c.cookies))
	for name := range c.cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		req.AddCookie(&http.Cookie{Name: name, Value: c.cookies[name]})
	}
}

func (c *Client) storeCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range cookies {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie.Value
	}
}
