package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/domain"
)

// ResponseChecker wraps one response and asserts on it. Every assertion
// stops the test on mismatch; the predicate methods return the checker so
// calls chain.
type ResponseChecker struct {
	t    TestingT
	resp *http.Response
	body []byte
	doc  Document
}

// NewResponseChecker reads and closes the response body. A non-empty body
// that is not a JSON object fails the test. The returned checker is never
// nil; after a failure its document is empty.
func NewResponseChecker(t TestingT, resp *http.Response) *ResponseChecker {
	t.Helper()

	var body []byte
	if resp.Body != nil {
		var err error
		body, err = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			fail(t, "failed to read response body: %v", err)
			return &ResponseChecker{t: t, resp: resp, doc: Document{}}
		}
	}

	c := &ResponseChecker{t: t, resp: resp, body: body, doc: Document{}}
	if len(bytes.TrimSpace(body)) == 0 {
		return c
	}

	if err := json.Unmarshal(body, &c.doc); err != nil {
		fail(t, "response body is not a JSON object (status %d): %v\nbody: %s", resp.StatusCode, err, body)
		c.doc = Document{}
		return c
	}
	if c.doc == nil {
		c.doc = Document{}
	}
	return c
}

// StatusCode returns the response status.
func (c *ResponseChecker) StatusCode() int { return c.resp.StatusCode }

// Body returns the raw response body.
func (c *ResponseChecker) Body() []byte { return c.body }

// Document returns the decoded body.
func (c *ResponseChecker) Document() Document { return c.doc }

// Response returns the underlying response. Its body has been consumed.
func (c *ResponseChecker) Response() *http.Response { return c.resp }

// DecodeInto decodes the raw body into v.
func (c *ResponseChecker) DecodeInto(v any) {
	c.t.Helper()
	if err := json.Unmarshal(c.body, v); err != nil {
		fail(c.t, "failed to decode response body into %T: %v", v, err)
	}
}

// KeyValue returns the value under key. It fails when the key is missing and
// also when the value is falsy (null, false, 0, "", [] or {}).
func (c *ResponseChecker) KeyValue(key string) any {
	c.t.Helper()
	v, ok := c.doc[key]
	if !ok || !truthy(v) {
		fail(c.t, "expected key %q with a non-empty value in response (status %d), got %s",
			key, c.resp.StatusCode, c.body)
		return nil
	}
	return v
}

// Value returns the value under key, failing only when the key is missing.
func (c *ResponseChecker) Value(key string) any {
	c.t.Helper()
	v, ok := c.doc[key]
	if !ok {
		fail(c.t, "expected key %q in response (status %d), got %s", key, c.resp.StatusCode, c.body)
		return nil
	}
	return v
}

// HasCookie returns the value of a cookie set by the response.
func (c *ResponseChecker) HasCookie(name string) string {
	c.t.Helper()
	for _, cookie := range c.resp.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	fail(c.t, "expected cookie %q in response, got %v", name, cookieNames(c.resp.Cookies()))
	return ""
}

// Paginated returns the "results" list and the "pagination" object of a list
// response. Fewer than minRecords results, or none at all, fail the test.
func (c *ResponseChecker) Paginated(minRecords int) ([]any, domain.Pagination) {
	c.t.Helper()

	results, ok := c.doc.Array("results")
	if !ok {
		fail(c.t, "expected \"results\" array in response (status %d), got %s", c.resp.StatusCode, c.body)
		return nil, domain.Pagination{}
	}
	if len(results) == 0 {
		fail(c.t, "expected non-empty \"results\"")
		return nil, domain.Pagination{}
	}
	if len(results) < minRecords {
		fail(c.t, "expected at least %d results, got %d", minRecords, len(results))
		return nil, domain.Pagination{}
	}

	raw, ok := c.doc.Object("pagination")
	if !ok {
		fail(c.t, "expected \"pagination\" object in response, got %s", c.body)
		return nil, domain.Pagination{}
	}
	pagination, err := domain.NewPaginationFromMap(raw)
	if err != nil {
		fail(c.t, "%v", err)
		return nil, domain.Pagination{}
	}
	return results, pagination
}

// CheckException asserts that the response is the client-facing rendering
// of exc: same status, body "message" equal to its ClientMessage.
func (c *ResponseChecker) CheckException(exc domain.APIException) *ResponseChecker {
	c.t.Helper()
	c.ValidateStatus(exc.StatusCode)

	msg, ok := c.doc.String("message")
	if !ok {
		fail(c.t, "expected \"message\" in error response, got %s", c.body)
		return c
	}
	if msg != exc.ClientMessage {
		fail(c.t, "expected message %q, got %q", exc.ClientMessage, msg)
	}
	return c
}

// ValidateStatus asserts an exact status code.
func (c *ResponseChecker) ValidateStatus(code int) *ResponseChecker {
	c.t.Helper()
	if c.resp.StatusCode != code {
		fail(c.t, "expected status %d, got %d\nbody: %s", code, c.resp.StatusCode, c.body)
	}
	return c
}

// IsInformational asserts a 1xx status.
func (c *ResponseChecker) IsInformational() *ResponseChecker {
	c.t.Helper()
	return c.statusClass(100, "informational")
}

// IsSuccess asserts a 2xx status.
func (c *ResponseChecker) IsSuccess() *ResponseChecker {
	c.t.Helper()
	return c.statusClass(200, "success")
}

// IsRedirect asserts a 3xx status.
func (c *ResponseChecker) IsRedirect() *ResponseChecker {
	c.t.Helper()
	return c.statusClass(300, "redirect")
}

// IsClientError asserts a 4xx status.
func (c *ResponseChecker) IsClientError() *ResponseChecker {
	c.t.Helper()
	return c.statusClass(400, "client error")
}

// IsServerError asserts a 5xx status.
func (c *ResponseChecker) IsServerError() *ResponseChecker {
	c.t.Helper()
	return c.statusClass(500, "server error")
}

func (c *ResponseChecker) statusClass(base int, name string) *ResponseChecker {
	c.t.Helper()
	if c.resp.StatusCode < base || c.resp.StatusCode >= base+100 {
		fail(c.t, "expected %s status (%dxx), got %d\nbody: %s", name, base/100, c.resp.StatusCode, c.body)
	}
	return c
}

// failedExchange stands in for a response that never arrived.
func failedExchange(t TestingT) *ResponseChecker {
	resp := &http.Response{Header: http.Header{}, Body: http.NoBody}
	return &ResponseChecker{t: t, resp: resp, doc: Document{}}
}

func cookieNames(cookies []*http.Cookie) []string {
	names := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		names = append(names, cookie.Name)
	}
	return names
}
