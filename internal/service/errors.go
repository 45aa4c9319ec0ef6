package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUsernameTaken      = errors.New("username already taken")

	ErrInvalidPeriod     = errors.New("rental must end after it starts")
	ErrUnitNotAvailable  = errors.New("motor unit is not available")
	ErrUnitRented        = errors.New("motor unit is currently rented")
	ErrTransactionClosed = errors.New("transaction is already closed")
	ErrAlreadyPaid       = errors.New("transaction is already paid")

	ErrPaymentNotConfigured = errors.New("QRIS payment is not configured")
	ErrNothingToPay         = errors.New("nothing to pay")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
