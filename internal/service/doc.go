// Package service contains the example application's use cases. Services
// coordinate the store interfaces inside transactions and translate store
// errors into the sentinels the API layer maps to HTTP responses.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete storage implementation.
package service
