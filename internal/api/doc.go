// Package api implements the HTTP surface of the example application: JSON
// handlers for authentication, visitors, the current user and notes, plus
// the router that mounts them behind the trace and auth middleware.
//
// Every failure is answered with a domain.APIException rendered as
// {"message": <client message>}.
package api
