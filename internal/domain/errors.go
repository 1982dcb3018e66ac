package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed or missing input. The field name is part of
// the message so the client can tell which input was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError marks a lookup of an unknown entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

// BusinessRuleError marks a request that is well-formed but violates a
// business rule (e.g. ordering an inactive bouquet, an illegal transition).
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func NewBusinessRuleError(message string) error {
	return &BusinessRuleError{Message: message}
}

// ErrUnauthorized is returned for any authentication failure. Missing,
// invalid and expired tokens all map to the same value so the response does
// not leak which case occurred.
var ErrUnauthorized = errors.New("unauthorized")

// ErrDuplicateOrderNumber is surfaced by the order repository when the unique
// order_number constraint is hit; the service retries with a fresh sequence.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")
