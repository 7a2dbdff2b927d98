// Package auth issues and validates the example application's credentials:
// HMAC-signed JWT access and refresh tokens, bcrypt password checks, and the
// CredentialIssuer seam that test factories call to log users in.
package auth
