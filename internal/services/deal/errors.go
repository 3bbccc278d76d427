package deal

import "errors"

// Service errors
var (
	ErrDealNotFound       = errors.New("deal not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrPostUnavailable    = errors.New("post is not available for a deal")
	ErrPostAlreadyHasDeal = errors.New("post already has an active deal")
	ErrUserNotInterested  = errors.New("user has not expressed interest in this post")
	ErrInvalidTransition  = errors.New("invalid deal status transition")
)
