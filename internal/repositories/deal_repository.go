package repositories

import (
	"errors"
	"time"

	"bazaar/internal/models"
)

var (
	ErrDealNotFound  = errors.New("deal not found")
	ErrDuplicateDeal = errors.New("post already has a deal")
	ErrOTPNotFound   = errors.New("otp not found")
)

// DealRepository defines the interface for deal-related database operations.
// OTP rows and the post-status cascade live here too because every
// multi-row deal mutation must run inside one ExecuteInTransaction call.
type DealRepository interface {
	// Create inserts a deal; the partial unique index on post_id rejects a
	// second live deal for the same post atomically
	Create(deal *models.Deal) error

	// GetByID retrieves a deal by ID
	GetByID(id string) (*models.Deal, error)

	// GetByIDForUpdate retrieves a deal by ID with a row lock
	GetByIDForUpdate(id string) (*models.Deal, error)

	// GetByPostID retrieves the live (non-cancelled) deal for a post
	GetByPostID(postID string) (*models.Deal, error)

	// Update saves deal mutations
	Update(deal *models.Deal) error

	// GetPostForUpdate retrieves the deal's post with a row lock so its
	// status can be re-validated inside the transaction
	GetPostForUpdate(postID string) (*models.Post, error)

	// SetPostStatus writes the post lifecycle cascade
	SetPostStatus(postID, status string) error

	// CreateOTP inserts an OTP row for a deal
	CreateOTP(otp *models.OTP) error

	// ReplaceOTP removes any existing OTP for the deal and inserts the new one
	ReplaceOTP(otp *models.OTP) error

	// GetOTPByDealID retrieves a deal's OTP, optionally row-locked
	GetOTPByDealID(dealID string, forUpdate bool) (*models.OTP, error)

	// MarkOTPUsed conditionally flips used false->true; returns false when
	// the row was already used
	MarkOTPUsed(otpID string) (bool, error)

	// DeleteExpiredOTPs removes unused codes that expired before the cutoff
	DeleteExpiredOTPs(before time.Time) (int64, error)

	// ExecuteInTransaction runs fn against a repository bound to one
	// database transaction; fn's writes commit or roll back together
	ExecuteInTransaction(fn func(DealRepository) error) error
}

// Implementation is in deal_repository_impl.go
