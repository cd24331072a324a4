// Package store defines the credential store holding the access and refresh
// tokens of the signed-in user.
//
// It ships with an in-memory implementation for tests and short lived tools, a
// JSON file implementation and an encrypted secret implementation backed by
// viant/scy that is meant for persisted sessions.
//
// Read failures of a backing store are reported as absent tokens so that a
// temporarily unavailable store degrades the client to an unauthenticated
// session instead of failing it.
package store
