// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the settings shared by the example server and the test toolkit:
// database selection, token issuance, and the identities the user factories
// create.
package config
