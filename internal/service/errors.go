package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrTicketNotFound = fmt.Errorf("ticket %w", ErrNotFound)
	ErrItemNotFound   = fmt.Errorf("checklist item %w", ErrNotFound)
)

// ValidationError is bad caller input; Message is safe to show as-is.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }
