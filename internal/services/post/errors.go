package post

import "errors"

// Service errors
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrNotOwner         = errors.New("user does not own this post")
	ErrPostNotEditable  = errors.New("post can no longer be modified")
	ErrInvalidPostType  = errors.New("invalid post type")
	ErrInvalidUrgency   = errors.New("invalid urgency level")
	ErrInvalidPrice     = errors.New("price cannot be negative")
)
