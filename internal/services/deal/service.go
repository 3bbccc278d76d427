// Package deal implements the deal lifecycle: a post owner selects one
// interested buyer, the deal moves PENDING -> CONFIRMED -> COMPLETED, or is
// cancelled from either non-terminal state. Completion itself is driven by
// OTP validation, not by this package's public surface.
package deal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/utils"
)

// OTP policy. The code is issued together with the deal and confirmed
// out-of-band by the seller.
const (
	DefaultOTPLength = 6
	DefaultOTPTTL    = 15 * time.Minute
)

// Config holds deal service configuration.
type Config struct {
	OTPLength int
	OTPTTL    time.Duration
}

// Service defines the deal lifecycle operations.
type Service interface {
	OpenDeal(ctx context.Context, postID, buyerID string) (*models.Deal, error)
	ConfirmDeal(ctx context.Context, dealID string) (*models.Deal, error)
	CancelDeal(ctx context.Context, dealID, reason string) (*models.Deal, error)
	GetDeal(ctx context.Context, dealID string) (*models.Deal, error)
	GetDealForPost(ctx context.Context, postID string) (*models.Deal, error)
}

type service struct {
	deals     repositories.DealRepository
	posts     repositories.PostRepository
	interests repositories.InterestRepository
	config    Config
	metrics   MetricsCollector
}

// NewService creates a new deal service
func NewService(
	deals repositories.DealRepository,
	posts repositories.PostRepository,
	interests repositories.InterestRepository,
	config Config,
	metrics MetricsCollector,
) Service {
	if deals == nil {
		panic("deal repository is required")
	}
	if posts == nil {
		panic("post repository is required")
	}
	if interests == nil {
		panic("interest repository is required")
	}

	if config.OTPLength == 0 {
		config.OTPLength = DefaultOTPLength
	}
	if config.OTPTTL == 0 {
		config.OTPTTL = DefaultOTPTTL
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &service{
		deals:     deals,
		posts:     posts,
		interests: interests,
		config:    config,
		metrics:   metrics,
	}
}

// OpenDeal creates a PENDING deal for the post with the selected buyer and
// issues the confirmation OTP in the same transaction. The partial unique
// index on deals.post_id decides the winner when two calls race; the loser
// gets ErrPostAlreadyHasDeal.
func (s *service) OpenDeal(ctx context.Context, postID, buyerID string) (*models.Deal, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if !post.Available() {
		return nil, ErrPostUnavailable
	}

	interested, err := s.interests.Exists(buyerID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check interest: %w", err)
	}
	if !interested {
		return nil, ErrUserNotInterested
	}

	deal := &models.Deal{
		PostID: postID,
		UserID: buyerID,
		Status: models.DealStatusPending,
	}

	err = s.deals.ExecuteInTransaction(func(tx repositories.DealRepository) error {
		// Re-validate under the row lock: the post may have been deleted or
		// fulfilled between the check above and this transaction.
		locked, err := tx.GetPostForUpdate(postID)
		if err != nil {
			if errors.Is(err, repositories.ErrPostNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if !locked.Available() {
			return ErrPostUnavailable
		}

		if err := tx.Create(deal); err != nil {
			if errors.Is(err, repositories.ErrDuplicateDeal) {
				return ErrPostAlreadyHasDeal
			}
			return err
		}

		code, err := utils.GenerateNumericCode(s.config.OTPLength)
		if err != nil {
			return err
		}
		otp := &models.OTP{
			DealID:    deal.ID,
			Code:      code,
			ExpiresAt: time.Now().Add(s.config.OTPTTL),
		}
		return tx.CreateOTP(otp)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPostAlreadyHasDeal):
			s.metrics.RecordError("open_deal", "post_already_has_deal")
			return nil, err
		case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrPostUnavailable):
			return nil, err
		}
		return nil, fmt.Errorf("failed to open deal: %w", err)
	}

	s.metrics.RecordDealOpened()
	return deal, nil
}

// ConfirmDeal moves a deal from PENDING to CONFIRMED. Confirming an already
// confirmed deal is a no-op; terminal states reject the transition.
func (s *service) ConfirmDeal(ctx context.Context, dealID string) (*models.Deal, error) {
	var deal *models.Deal
	err := s.deals.ExecuteInTransaction(func(tx repositories.DealRepository) error {
		var err error
		deal, err = tx.GetByIDForUpdate(dealID)
		if err != nil {
			if errors.Is(err, repositories.ErrDealNotFound) {
				return ErrDealNotFound
			}
			return err
		}

		if deal.Status == models.DealStatusConfirmed {
			return nil
		}
		if !models.CanTransitionDeal(deal.Status, models.DealStatusConfirmed) {
			return ErrInvalidTransition
		}

		deal.Status = models.DealStatusConfirmed
		return tx.Update(deal)
	})
	if err != nil {
		if errors.Is(err, ErrDealNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to confirm deal: %w", err)
	}
	return deal, nil
}

// CancelDeal moves a PENDING or CONFIRMED deal to CANCELLED. The post stays
// ACTIVE so the owner can select another interested user.
func (s *service) CancelDeal(ctx context.Context, dealID, reason string) (*models.Deal, error) {
	var deal *models.Deal
	err := s.deals.ExecuteInTransaction(func(tx repositories.DealRepository) error {
		var err error
		deal, err = tx.GetByIDForUpdate(dealID)
		if err != nil {
			if errors.Is(err, repositories.ErrDealNotFound) {
				return ErrDealNotFound
			}
			return err
		}

		if !models.CanTransitionDeal(deal.Status, models.DealStatusCancelled) {
			return ErrInvalidTransition
		}

		deal.Status = models.DealStatusCancelled
		deal.CancelReason = reason
		return tx.Update(deal)
	})
	if err != nil {
		if errors.Is(err, ErrDealNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to cancel deal: %w", err)
	}

	s.metrics.RecordDealCancelled()
	return deal, nil
}

func (s *service) GetDeal(ctx context.Context, dealID string) (*models.Deal, error) {
	deal, err := s.deals.GetByID(dealID)
	if err != nil {
		if errors.Is(err, repositories.ErrDealNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return deal, nil
}

func (s *service) GetDealForPost(ctx context.Context, postID string) (*models.Deal, error) {
	deal, err := s.deals.GetByPostID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrDealNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return deal, nil
}
