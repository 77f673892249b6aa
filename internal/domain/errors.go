// Package domain contains the resource model and error types.
// Domain errors represent classified API outcomes, NOT raw HTTP responses.
// They are infrastructure-agnostic; adapters map wire-level failures into them.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of an API request.
// The set is closed: every non-success response maps to exactly one Kind.
type Kind int

const (
	// KindUnknown covers status codes with no defined classification.
	KindUnknown Kind = iota

	// KindRedirect indicates the server answered 301 or 302.
	KindRedirect

	// KindUnauthorized indicates missing or invalid credentials (401).
	KindUnauthorized

	// KindForbidden indicates the credentials lack permission (403).
	KindForbidden

	// KindNotFound indicates the resource does not exist (404).
	KindNotFound

	// KindValidationFailed indicates the server rejected the record (422).
	KindValidationFailed

	// KindPreconditionFailed indicates a failed conditional request (412).
	KindPreconditionFailed

	// KindServerError indicates a 5xx response.
	KindServerError
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRedirect:
		return "redirect"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindValidationFailed:
		return "validation failed"
	case KindPreconditionFailed:
		return "precondition failed"
	case KindServerError:
		return "server error"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is().
var (
	// ErrRedirect indicates the server responded with a redirect.
	ErrRedirect = errors.New("redirected")

	// ErrUnauthorized indicates authentication failed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the operation is not permitted.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidationFailed indicates the server rejected the record's attributes.
	ErrValidationFailed = errors.New("validation failed")

	// ErrPreconditionFailed indicates a conditional request did not match.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrServer indicates the server failed to process the request.
	ErrServer = errors.New("server error")

	// ErrUnknownResponse indicates a status code outside the classified set.
	ErrUnknownResponse = errors.New("unknown response")
)

// sentinelFor returns the sentinel error for a kind.
func sentinelFor(kind Kind) error {
	switch kind {
	case KindRedirect:
		return ErrRedirect
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindValidationFailed:
		return ErrValidationFailed
	case KindPreconditionFailed:
		return ErrPreconditionFailed
	case KindServerError:
		return ErrServer
	default:
		return ErrUnknownResponse
	}
}

// RequestError is a classified API failure carrying the status code and a
// best-effort message extracted from the response body.
type RequestError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s (status %d)", e.Kind, e.StatusCode)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *RequestError) Unwrap() error {
	return sentinelFor(e.Kind)
}

// NewRequestError creates a classified request error.
func NewRequestError(kind Kind, statusCode int, message string) error {
	return &RequestError{Kind: kind, StatusCode: statusCode, Message: message}
}

// InvalidRecordError is the validation-failure outcome (422). It carries the
// raw error entries decoded from the response body so the caller can resolve
// them against the record's attributes.
type InvalidRecordError struct {
	StatusCode int
	Entries    []ErrorEntry
}

// Error implements the error interface.
func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("record invalid (status %d, %d errors)", e.StatusCode, len(e.Entries))
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidRecordError) Unwrap() error {
	return ErrValidationFailed
}

// NewInvalidRecordError creates a validation-failure error with its raw entries.
func NewInvalidRecordError(statusCode int, entries []ErrorEntry) error {
	return &InvalidRecordError{StatusCode: statusCode, Entries: entries}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidationFailed checks if an error is a validation failure.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsPreconditionFailed checks if an error is a precondition failure.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsServerError checks if an error is a server-side failure.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}
