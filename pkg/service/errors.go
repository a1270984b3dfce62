package service

import "errors"

// Business failures surfaced to the HTTP layer. The gateway maps each
// of these to a status code; anything else becomes a 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired reset code")
	ErrTooManyAttempts    = errors.New("too many reset attempts")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrDuplicateReview    = errors.New("product already reviewed")
	ErrDuplicateCategory  = errors.New("category already exists")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrForbidden          = errors.New("not allowed")
)
