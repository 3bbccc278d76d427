// Package otp issues and validates the one-time confirmation codes that
// complete deals. Validation is the sole completion trigger: the used-flag
// flip, the deal transition and the post cascade commit in one transaction.
package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services/deal"
	"bazaar/internal/utils"
)

// Config holds OTP service configuration.
type Config struct {
	CodeLength int
	TTL        time.Duration
}

// Service defines the OTP confirmation operations.
type Service interface {
	// Issue generates a fresh code for the deal, replacing any previous one.
	Issue(ctx context.Context, dealID string) (*models.OTP, error)

	// Validate checks a submitted code and, on match, completes the deal and
	// fulfills its post atomically.
	Validate(ctx context.Context, dealID, code string) (*models.Deal, error)
}

type service struct {
	repo    repositories.DealRepository
	config  Config
	metrics deal.MetricsCollector
}

// NewService creates a new OTP service
func NewService(repo repositories.DealRepository, config Config, metrics deal.MetricsCollector) Service {
	if repo == nil {
		panic("deal repository is required")
	}
	if config.CodeLength == 0 {
		config.CodeLength = deal.DefaultOTPLength
	}
	if config.TTL == 0 {
		config.TTL = deal.DefaultOTPTTL
	}
	if metrics == nil {
		metrics = deal.NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		config:  config,
		metrics: metrics,
	}
}

func (s *service) Issue(ctx context.Context, dealID string) (*models.OTP, error) {
	var otp *models.OTP
	err := s.repo.ExecuteInTransaction(func(tx repositories.DealRepository) error {
		d, err := tx.GetByIDForUpdate(dealID)
		if err != nil {
			if errors.Is(err, repositories.ErrDealNotFound) {
				return deal.ErrDealNotFound
			}
			return err
		}
		if d.Terminal() {
			return deal.ErrInvalidTransition
		}

		code, err := utils.GenerateNumericCode(s.config.CodeLength)
		if err != nil {
			return err
		}

		otp = &models.OTP{
			DealID:    d.ID,
			Code:      code,
			ExpiresAt: time.Now().Add(s.config.TTL),
		}
		// Replace, don't accumulate: at most one live code per deal.
		return tx.ReplaceOTP(otp)
	})
	if err != nil {
		if errors.Is(err, deal.ErrDealNotFound) || errors.Is(err, deal.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to issue otp: %w", err)
	}
	return otp, nil
}

func (s *service) Validate(ctx context.Context, dealID, code string) (*models.Deal, error) {
	var completed *models.Deal
	err := s.repo.ExecuteInTransaction(func(tx repositories.DealRepository) error {
		row, err := tx.GetOTPByDealID(dealID, true)
		if err != nil {
			if errors.Is(err, repositories.ErrOTPNotFound) {
				return ErrOTPNotFound
			}
			return err
		}

		if row.Used {
			return ErrOTPAlreadyUsed
		}
		if row.Expired(time.Now()) {
			return ErrOTPExpired
		}
		if subtle.ConstantTimeCompare([]byte(row.Code), []byte(code)) != 1 {
			return ErrOTPMismatch
		}

		// The row is locked, but the conditional update guards the flip
		// against any path that bypasses the lock.
		flipped, err := tx.MarkOTPUsed(row.ID)
		if err != nil {
			return err
		}
		if !flipped {
			return ErrOTPAlreadyUsed
		}

		d, err := tx.GetByIDForUpdate(dealID)
		if err != nil {
			if errors.Is(err, repositories.ErrDealNotFound) {
				return deal.ErrDealNotFound
			}
			return err
		}
		if !models.CanTransitionDeal(d.Status, models.DealStatusCompleted) {
			return deal.ErrInvalidTransition
		}

		now := time.Now()
		d.Status = models.DealStatusCompleted
		d.CompletedAt = &now
		if err := tx.Update(d); err != nil {
			return err
		}

		if err := tx.SetPostStatus(d.PostID, models.PostStatusFullfilled); err != nil {
			return err
		}

		completed = d
		return nil
	})
	if err != nil {
		s.metrics.RecordOTPValidation(validationResult(err))
		switch {
		case errors.Is(err, ErrOTPNotFound),
			errors.Is(err, ErrOTPExpired),
			errors.Is(err, ErrOTPAlreadyUsed),
			errors.Is(err, ErrOTPMismatch),
			errors.Is(err, deal.ErrDealNotFound),
			errors.Is(err, deal.ErrInvalidTransition):
			return nil, err
		}
		return nil, fmt.Errorf("failed to validate otp: %w", err)
	}

	s.metrics.RecordOTPValidation("success")
	s.metrics.RecordDealCompleted()
	return completed, nil
}

func validationResult(err error) string {
	switch {
	case errors.Is(err, ErrOTPExpired):
		return "expired"
	case errors.Is(err, ErrOTPAlreadyUsed):
		return "already_used"
	case errors.Is(err, ErrOTPMismatch):
		return "mismatch"
	case errors.Is(err, ErrOTPNotFound):
		return "not_found"
	default:
		return "error"
	}
}
