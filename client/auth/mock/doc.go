// Package mock provides an in-process stub of the grocery authentication API.
//
// It implements register, activate, login, refresh, forgot and reset password
// plus a protected current user endpoint, issuing HS256 JWT token pairs. Tests
// can expire every issued access token to exercise the refresh flow of the
// client without a real backend.
package mock
