package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a domain error for transport-level mapping.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// Error is a domain error carrying a kind and structured detail.
type Error struct {
	Kind    ErrorKind
	Message string
	// MissingFields is populated for validation errors caused by absent
	// required input fields.
	MissingFields []string
	// Resource and ID identify the entity for not-found errors.
	Resource string
	ID       string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewMissingFieldsError creates a validation error listing absent required fields.
func NewMissingFieldsError(fields []string) *Error {
	return &Error{
		Kind:          KindValidation,
		Message:       fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", ")),
		MissingFields: fields,
	}
}

// NewNotFoundError creates a not-found error for the given resource and identifier.
func NewNotFoundError(resource, id string) *Error {
	return &Error{
		Kind:     KindNotFound,
		Message:  fmt.Sprintf("%s not found: %s", resource, id),
		Resource: resource,
		ID:       id,
	}
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInternalError creates an internal error wrapping an underlying cause.
func NewInternalError(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// AsDomainError extracts a *Error from err's chain, or nil.
func AsDomainError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	de := AsDomainError(err)
	return de != nil && de.Kind == KindNotFound
}

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool {
	de := AsDomainError(err)
	return de != nil && de.Kind == KindValidation
}
