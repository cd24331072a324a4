// Package auth exposes the authentication endpoints of the grocery API on top of
// the request executor of the parent client package.
//
// Service.Login stores the issued token pair in the client credential store, every
// later call made through the same client carries the access token and refreshes
// it transparently. Watch turns a call into a stream of presentation states
// (submitting followed by success or failure).
package auth
