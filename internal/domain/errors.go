package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ValidationError carries a client-facing message for a bad payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StockError is returned when a requested quantity exceeds what is on hand.
type StockError struct {
	Available int
	Requested int
}

func (e *StockError) Error() string {
	if e.Requested > 0 {
		return fmt.Sprintf("not enough quantity available. Available: %d, Requested: %d", e.Available, e.Requested)
	}
	return fmt.Sprintf("not enough quantity available. Available: %d", e.Available)
}
