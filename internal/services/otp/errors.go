package otp

import "errors"

// Service errors
var (
	ErrOTPNotFound    = errors.New("no otp issued for this deal")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPAlreadyUsed = errors.New("otp has already been used")
	ErrOTPMismatch    = errors.New("otp code does not match")
)
