package exchange

import "errors"

// Service errors
var (
	ErrDealNotFound       = errors.New("deal not found")
	ErrDealNotConfirmable = errors.New("deal has been cancelled")
	ErrExchangeNotFound   = errors.New("exchange not found")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrBuyerMismatch      = errors.New("buyer is not the selected user for this deal")
	ErrAlreadySettled     = errors.New("exchange is already settled")
)
