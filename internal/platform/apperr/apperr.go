// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the gateway.

It provides one discriminated error type that bridges upstream REST failures,
domain errors surfaced through GraphQL, and plain HTTP error responses.

Architecture:

  - AppError: A struct carrying a machine-readable Kind plus a client-safe message.
  - Upstream: Failed upstream calls keep their status, URL, and body for metrics and logs.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Callers switch on [AppError.Kind] instead of inspecting ad-hoc fields.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the error families handled by the gateway.
type Kind string

const (
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindUpstream    Kind = "UPSTREAM_ERROR"
	KindValidation  Kind = "VALIDATION_ERROR"
	KindRateLimited Kind = "RATE_LIMITED"
	KindInternal    Kind = "INTERNAL_ERROR"
	KindBadRequest  Kind = "BAD_REQUEST"
)

// AppError is the canonical error type for the gateway.
//
// # Security
//
// Cause, URL, and Body are for server-side logging and metrics only and are
// never written to HTTP error envelopes.
type AppError struct {
	// Kind is a machine-readable error identifier.
	Kind Kind `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the status used when the error is written as an HTTP response.
	HTTPStatus int `json:"-"`

	// Method, Status, URL and Body describe a failed upstream call.
	Method string `json:"-"`
	Status int    `json:"-"`
	URL    string `json:"-"`
	Body   string `json:"-"`

	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Domain Errors

// NotFound creates a 404 [AppError] with a fixed message.
func NotFound(msg string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError] for duplicate resources.
func Conflict(msg string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// # Upstream Errors

// MessageUpstream is the client-facing message of every upstream failure.
const MessageUpstream = "upstream request failed"

// Upstream records a failed call to the upstream REST service.
//
// status is 0 when no response was received (timeout, refused connection).
// cause carries the transport or decoding error, if any. The client only
// sees [MessageUpstream]; [AppError.Detail] describes the call for logs.
func Upstream(method string, status int, url, body string, cause error) *AppError {
	return &AppError{
		Kind:       KindUpstream,
		Message:    MessageUpstream,
		HTTPStatus: http.StatusBadGateway,
		Method:     method,
		Status:     status,
		URL:        url,
		Body:       body,
		Cause:      cause,
	}
}

// Detail describes a failed upstream call for server-side logs.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Method, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s %s responded with status %d", e.Method, e.URL, e.Status)
}

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError] for malformed transport payloads.
func BadRequest(msg string) *AppError {
	return &AppError{
		Kind:       KindBadRequest,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Kind:       KindRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the Kind of err, or the empty Kind if err is not an [*AppError].
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return ""
}
