package testutils

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

// HandlerBaseURL is the base URL of in-process transports.
const HandlerBaseURL = "http://testserver"

// Transport is where a Client sends its requests.
type Transport struct {
	BaseURL      string
	RoundTripper http.RoundTripper
}

// NewHandlerTransport serves requests by calling h directly. No sockets are
// opened.
func NewHandlerTransport(h http.Handler) *Transport {
	return &Transport{BaseURL: HandlerBaseURL, RoundTripper: handlerRoundTripper{handler: h}}
}

// NewServerTransport sends requests to a running test server.
func NewServerTransport(srv *httptest.Server) *Transport {
	return &Transport{BaseURL: srv.URL, RoundTripper: srv.Client().Transport}
}

// URL joins the base URL and path.
func (tr *Transport) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(tr.BaseURL, "/") + path
}

type handlerRoundTripper struct {
	handler http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	srvReq := req.Clone(req.Context())
	srvReq.RequestURI = req.URL.RequestURI()
	srvReq.RemoteAddr = "192.0.2.1:1234"
	if srvReq.Body == nil {
		srvReq.Body = http.NoBody
	}

	rec := httptest.NewRecorder()
	rt.handler.ServeHTTP(rec, srvReq)

	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
