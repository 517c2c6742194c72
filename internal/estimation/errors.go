package estimation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request field is out of range or not in its enumeration.
var ErrInvalidInput = errors.New("invalid input")

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
