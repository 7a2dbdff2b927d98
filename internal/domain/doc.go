// Package domain contains the core entities of the example application and the
// response DTOs its tests assert against: Pagination mirrors the "pagination"
// object every list endpoint returns, and APIException is both the error the
// handlers raise and the expected-value template used by response checks.
package domain
