package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order core. Controllers map these to HTTP
// responses with errors.Is; everything else is treated as a server fault.
var (
	ErrNotFound                  = errors.New("not found")
	ErrInvalidTransition         = errors.New("invalid order status transition")
	ErrValidation                = errors.New("validation failed")
	ErrInsufficientStock         = errors.New("insufficient stock")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func insufficientStockErr(productName string) error {
	return fmt.Errorf("%w: not enough stock for %s", ErrInsufficientStock, productName)
}
