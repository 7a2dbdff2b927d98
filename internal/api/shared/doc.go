// Package shared holds the request, response and context helpers used by
// both the API handlers and their middleware.
package shared
