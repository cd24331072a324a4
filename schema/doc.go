// Package schema defines the wire contract of the grocery API: the uniform
// response envelope returned by every endpoint and the request/response
// payloads of the authentication endpoints.
package schema
