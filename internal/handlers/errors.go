package handlers

import (
	"errors"

	"bazaar/internal/services/deal"
	"bazaar/internal/services/exchange"
	"bazaar/internal/services/interest"
	"bazaar/internal/services/otp"
	"bazaar/internal/services/post"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps expected service errors to HTTP status codes. Anything
// unmapped is an infrastructure failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, deal.ErrDealNotFound),
		errors.Is(err, deal.ErrPostNotFound),
		errors.Is(err, interest.ErrPostNotFound),
		errors.Is(err, post.ErrPostNotFound),
		errors.Is(err, post.ErrCategoryNotFound),
		errors.Is(err, post.ErrOwnerNotFound),
		errors.Is(err, exchange.ErrDealNotFound),
		errors.Is(err, exchange.ErrExchangeNotFound),
		errors.Is(err, otp.ErrOTPNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, deal.ErrPostAlreadyHasDeal),
		errors.Is(err, interest.ErrDuplicateInterest),
		errors.Is(err, deal.ErrInvalidTransition),
		errors.Is(err, exchange.ErrAlreadySettled),
		errors.Is(err, otp.ErrOTPAlreadyUsed):
		return fiber.StatusConflict

	case errors.Is(err, otp.ErrOTPExpired):
		return fiber.StatusGone

	case errors.Is(err, deal.ErrPostUnavailable),
		errors.Is(err, deal.ErrUserNotInterested),
		errors.Is(err, interest.ErrPostUnavailable),
		errors.Is(err, interest.ErrOwnPost),
		errors.Is(err, post.ErrNotOwner),
		errors.Is(err, post.ErrPostNotEditable),
		errors.Is(err, post.ErrInvalidPostType),
		errors.Is(err, post.ErrInvalidUrgency),
		errors.Is(err, post.ErrInvalidPrice),
		errors.Is(err, exchange.ErrDealNotConfirmable),
		errors.Is(err, exchange.ErrInvalidAmount),
		errors.Is(err, exchange.ErrBuyerMismatch),
		errors.Is(err, otp.ErrOTPMismatch):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
