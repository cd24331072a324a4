package client

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures
type Kind int

const (
	// Transport means no response was obtained (network, DNS, timeout, cancellation)
	Transport Kind = iota + 1
	// Decoding means the response body did not match the expected shape
	Decoding
	// Unauthorized means the session could not be restored by a token refresh
	Unauthorized
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Decoding:
		return "decoding"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// RequestError represents a request pipeline failure
type RequestError struct {
	Kind   Kind
	Reason string
	Err    error
}

// Sentinels matching any RequestError of the same Kind with errors.Is
var (
	// ErrTransport matches connection, timeout and rate limiter failures
	ErrTransport = &RequestError{Kind: Transport}
	// ErrDecoding matches responses that cannot be decoded
	ErrDecoding = &RequestError{Kind: Decoding}
	// ErrUnauthorized matches requests rejected after refresh or without credentials
	ErrUnauthorized = &RequestError{Kind: Unauthorized}
)

func (e *RequestError) Error() string {
	msg := e.Kind.String()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind
func (e *RequestError) Is(target error) bool {
	sentinel, ok := target.(*RequestError)
	if !ok || sentinel.Reason != "" || sentinel.Err != nil {
		return false
	}
	return sentinel.Kind == e.Kind
}

func newTransportError(reason string, err error) *RequestError {
	return &RequestError{Kind: Transport, Reason: reason, Err: err}
}

func newDecodingError(err error) *RequestError {
	return &RequestError{Kind: Decoding, Reason: fmt.Sprintf("failed to decode server response: %v", err)}
}

func newUnauthorizedError(reason string, err error) *RequestError {
	return &RequestError{Kind: Unauthorized, Reason: reason, Err: err}
}

// Message returns generic user facing message for a pipeline error
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "Session expired. Please log in again."
	case errors.Is(err, ErrDecoding):
		return "Unexpected server response. Please try again later."
	case errors.Is(err, ErrTransport):
		return "Unable to reach the server. Please check your connection."
	}
	return "Something went wrong. Please try again later."
}
