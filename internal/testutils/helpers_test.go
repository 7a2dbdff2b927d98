package testutils

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/require"
)

// errFailNow is the panic value fakeT uses to stop the code under test.
type errFailNow struct{}

// fakeT records failures instead of failing the real test.
type fakeT struct {
	mu       sync.Mutex
	messages []string
	failed   bool
}

func (f *fakeT) Helper() {}

func (f *fakeT) Errorf(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}

func (f *fakeT) FailNow() {
	f.mu.Lock()
	f.failed = true
	f.mu.Unlock()
	panic(errFailNow{})
}

func (f *fakeT) Failed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

func (f *fakeT) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.messages, "\n")
}

// run calls fn, swallowing the panic raised by FailNow.
func (f *fakeT) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errFailNow); !ok {
				panic(r)
			}
		}
	}()
	fn()
}

// expectFailure asserts that fn fails and returns the failure output.
func expectFailure(t *testing.T, fn func(ft *fakeT)) string {
	t.Helper()
	ft := &fakeT{}
	ft.run(func() { fn(ft) })
	require.True(t, ft.Failed(), "expected a test failure")
	return ft.Output()
}

// expectPass asserts that fn does not fail.
func expectPass(t *testing.T, fn func(ft *fakeT)) {
	t.Helper()
	ft := &fakeT{}
	ft.run(func() { fn(ft) })
	require.False(t, ft.Failed(), "unexpected test failure: %s", ft.Output())
}

// checkerFor serves one request to h and wraps the response.
func checkerFor(ft *fakeT, h http.Handler) *ResponseChecker {
	return NewClient(NewHandlerTransport(h)).Get(context.Background(), ft, "/")
}

func jsonHandler(status int, body string) http.Handler {
	headers := http.Header{"Content-Type": {"application/json"}}
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

// softT records failures but lets execution continue past FailNow, like an
// assertion helper that only marks the test failed.
type softT struct {
	fakeT
}

func (s *softT) FailNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
}
