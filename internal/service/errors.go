package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotJSONFile is returned when an upload does not carry a .json name
	ErrNotJSONFile = errors.New("only JSON files are allowed")

	// ErrInvoiceNotFound is returned when a file has no invoice to show
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrSessionNotFound is returned for unknown or expired edit sessions
	ErrSessionNotFound = errors.New("edit session not found")
)

// ServiceError represents an error in the service layer
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Err
}
