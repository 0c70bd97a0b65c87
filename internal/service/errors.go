package service

import (
	"errors"
	"fmt"

	"cost-tracker/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpenseNotFound    = errors.New("expense not found")
)

// DimensionNotFoundError reports a category, vendor or payment method name
// that matches no reference row. It is bad request content, not a missing
// resource.
type DimensionNotFoundError struct {
	Dimension models.Dimension
	Value     string
}

func (e *DimensionNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Dimension.Label())
}

// Details is the per-field payload attached to the error envelope.
func (e *DimensionNotFoundError) Details() map[string]string {
	return map[string]string{e.Dimension.Field(): e.Value}
}

// ValidationError carries a client-facing message and optional details.
// Unknown marks rejected keys rather than invalid values.
type ValidationError struct {
	Message string
	Details any
	Unknown bool
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError marks a failure of the database itself, as opposed to a
// request the data cannot satisfy.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// txError classifies what a transaction returned. Errors raised inside the
// callback are already classified; begin and commit failures are storage.
func txError(op string, err error) error {
	var (
		storageErr *StorageError
		dimErr     *DimensionNotFoundError
	)
	if errors.As(err, &storageErr) || errors.As(err, &dimErr) || errors.Is(err, ErrExpenseNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
