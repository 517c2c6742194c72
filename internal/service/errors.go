package service

import (
	"fmt"

	"github.com/chasta/skyguard/internal/estimation"
	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrCalculationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "calculation")
}

// ErrInvalidInput wraps estimation.ErrInvalidInput so both errors.As and errors.Is match.
type ErrInvalidInput struct {
	error
}

func NewErrInvalidInput(format string, args ...any) *ErrInvalidInput {
	return &ErrInvalidInput{fmt.Errorf("%w: %s", estimation.ErrInvalidInput, fmt.Sprintf(format, args...))}
}

func (e *ErrInvalidInput) Unwrap() error {
	return e.error
}
