package model

import (
	"errors"
	"fmt"
)

// ErrInputMissing is returned when a caller supplies no code
var ErrInputMissing = errors.New("code is required")

// InternalFault wraps a panic recovered at a transport boundary
type InternalFault struct {
	Op    string
	Cause any
}

func (e *InternalFault) Error() string {
	return fmt.Sprintf("internal fault during %s: %v", e.Op, e.Cause)
}

// Unwrap exposes the cause when the panic value was itself an error
func (e *InternalFault) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
