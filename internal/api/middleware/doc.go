// Package middleware contains the HTTP middleware of the example application.
package middleware
