package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies domain errors for transport-layer mapping.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeNoRateConfigured   ErrorCode = "NO_RATE_CONFIGURED"
	CodeTransitionRejected ErrorCode = "TRANSITION_REJECTED"
	CodeInvalidState       ErrorCode = "INVALID_STATE"
)

// DomainError is the common error type for all domain-level failures.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError reports malformed or logically inconsistent input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewUnauthorizedError reports a caller with no usable identity.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError reports a caller lacking the required privilege.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: message}
}

// NewConflictError reports a lost write race (optimistic/conditional update miss).
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

// NewNoRateError reports that no positive rate is configured for a service type.
func NewNoRateError(serviceType string) *DomainError {
	return &DomainError{
		Code:    CodeNoRateConfigured,
		Message: fmt.Sprintf("no valid rate configured for service type %q", serviceType),
	}
}

// NewTransitionRejectedError reports a failed status transition. The message is
// deliberately generic: which guard failed (state, ownership, target) must not
// be disclosed to the caller.
func NewTransitionRejectedError() *DomainError {
	return &DomainError{Code: CodeTransitionRejected, Message: "unable to update booking"}
}

// NewInvalidStateError reports an illegal aggregate state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("invalid state transition from %s to %s", from, to),
	}
}

// CodeOf returns the error code if err is a DomainError, or an empty code.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
