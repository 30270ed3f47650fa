package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrHolderNotFound  = errors.New("holder not found")
	ErrSchemeNotFound  = errors.New("scheme not found")
	ErrDispatchFailed  = errors.New("notification dispatch failed")
	ErrComputation     = errors.New("progress computation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidSchedule = "INVALID_SCHEDULE"
	ErrCodeHolderNotFound  = "HOLDER_NOT_FOUND"
	ErrCodeSchemeNotFound  = "SCHEME_NOT_FOUND"
	ErrCodeDispatchFailed  = "DISPATCH_FAILED"
	ErrCodeComputation     = "COMPUTATION_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeCacheError      = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapInvalidSchedule(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidSchedule,
		reason,
		ErrInvalidSchedule,
	)
}

func WrapHolderNotFound(holderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeHolderNotFound,
		fmt.Sprintf("Holder with ID %s not found", holderID),
		ErrHolderNotFound,
	)
}

func WrapSchemeNotFound(holderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSchemeNotFound,
		fmt.Sprintf("No scheme found for holder %s", holderID),
		ErrSchemeNotFound,
	)
}

func WrapDispatchError(target string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDispatchFailed,
		fmt.Sprintf("Failed to dispatch message to %s", target),
		errors.Join(ErrDispatchFailed, err),
	)
}

func WrapComputationError(holderID string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeComputation,
		fmt.Sprintf("Failed to compute progress for holder %s", holderID),
		errors.Join(ErrComputation, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
