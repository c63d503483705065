package rpc

import (
	"context"
	"errors"
	"fmt"

	dErrors "govassets/pkg/domain-errors"
	"govassets/pkg/platform/sentinel"
)

// ErrorCategory defines the normalized failure taxonomy for chain RPC calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the node took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the node returned malformed or undecodable data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorNodeError indicates a JSON-RPC error object returned by the node
	ErrorNodeError ErrorCategory = "node_error"

	// ErrorOutage indicates the endpoint is unavailable or the breaker is open
	ErrorOutage ErrorCategory = "outage"

	// ErrorRateLimited indicates the endpoint throttled the request
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected client-side failure
	ErrorInternal ErrorCategory = "internal"
)

// Error wraps RPC failures with normalized categorization.
type Error struct {
	Category   ErrorCategory
	Method     string
	Code       int // JSON-RPC error code, when the node returned one
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("rpc %s [%s]: %s: %v", e.Method, e.Category, e.Message, e.Underlying)
	}
	if e.Code != 0 {
		return fmt.Sprintf("rpc %s [%s]: %d %s", e.Method, e.Category, e.Code, e.Message)
	}
	return fmt.Sprintf("rpc %s [%s]: %s", e.Method, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized RPC error.
func NewError(category ErrorCategory, method, message string, underlying error) *Error {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &Error{
		Category:   category,
		Method:     method,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var re *Error
	if errors.As(err, &re) {
		return re.Category
	}
	return ErrorInternal
}

func classifyTransport(method string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrorTimeout, method, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewError(ErrorInternal, method, "request canceled", err)
	}
	return NewError(ErrorOutage, method, "transport failure", err)
}

// ErrCircuitOpen is returned while the endpoint breaker rejects calls.
var ErrCircuitOpen = errors.New("rpc circuit open")

// ToDomainError maps a chain read failure onto a domain error code. Errors that
// already carry a code pass through unchanged.
func ToDomainError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.CodeOf(err); ok {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
	}
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg+": snapshot store unavailable")
	}
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.Category {
		case ErrorTimeout:
			return dErrors.Wrap(err, dErrors.CodeTimeout, msg+": chain endpoint timed out")
		case ErrorOutage, ErrorRateLimited:
			return dErrors.Wrap(err, dErrors.CodeUnavailable, msg+": chain endpoint unavailable")
		case ErrorNodeError, ErrorBadData:
			return dErrors.Wrap(err, dErrors.CodeBadGateway, msg+": chain endpoint returned an error")
		}
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
