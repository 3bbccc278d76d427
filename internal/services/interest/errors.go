package interest

import "errors"

// Service errors
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostUnavailable   = errors.New("post is not accepting interest")
	ErrDuplicateInterest = errors.New("interest already expressed for this post")
	ErrOwnPost           = errors.New("cannot express interest in your own post")
)
