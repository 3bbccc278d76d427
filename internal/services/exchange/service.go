// Package exchange records the monetary handoff for a deal. Settlement here
// is informational: only OTP validation completes a deal.
package exchange

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// Service defines the exchange settlement operations.
type Service interface {
	// RecordPayment creates or updates the deal's exchange record.
	RecordPayment(ctx context.Context, req PaymentRequest) (*models.Exchange, error)

	// MarkSettled moves the exchange from PENDING to COMPLETED. Settling an
	// already settled exchange is a no-op.
	MarkSettled(ctx context.Context, exchangeID string) (*models.Exchange, error)

	// GetForDeal returns the deal's exchange record.
	GetForDeal(ctx context.Context, dealID string) (*models.Exchange, error)
}

// PaymentRequest carries the buyer's settlement details.
type PaymentRequest struct {
	DealID    string
	BuyerID   string
	Amount    float64
	UpiID     string
	QRCodeURL string
	Metadata  models.JSON
}

type service struct {
	exchanges repositories.ExchangeRepository
	deals     repositories.DealRepository
}

// NewService creates a new exchange service
func NewService(exchanges repositories.ExchangeRepository, deals repositories.DealRepository) Service {
	if exchanges == nil {
		panic("exchange repository is required")
	}
	if deals == nil {
		panic("deal repository is required")
	}

	return &service{
		exchanges: exchanges,
		deals:     deals,
	}
}

func (s *service) RecordPayment(ctx context.Context, req PaymentRequest) (*models.Exchange, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	deal, err := s.deals.GetByID(req.DealID)
	if err != nil {
		if errors.Is(err, repositories.ErrDealNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}
	if deal.Status == models.DealStatusCancelled {
		return nil, ErrDealNotConfirmable
	}
	if deal.UserID != req.BuyerID {
		return nil, ErrBuyerMismatch
	}

	existing, err := s.exchanges.GetByDealID(req.DealID)
	if err != nil && !errors.Is(err, repositories.ErrExchangeNotFound) {
		return nil, fmt.Errorf("failed to load exchange: %w", err)
	}

	if existing != nil {
		return s.applyPayment(existing, req)
	}

	exchange := &models.Exchange{
		DealID:    req.DealID,
		BuyerID:   req.BuyerID,
		Amount:    req.Amount,
		UpiID:     req.UpiID,
		QRCodeURL: req.QRCodeURL,
		Status:    models.ExchangeStatusPending,
		Metadata:  req.Metadata,
	}
	if err := s.exchanges.Create(exchange); err != nil {
		// Lost a race with a concurrent RecordPayment; the unique deal_id
		// index kept a single row. Apply this caller's details to it the
		// same way the non-race path does.
		if errors.Is(err, repositories.ErrDuplicateExchange) {
			winner, gerr := s.exchanges.GetByDealID(req.DealID)
			if gerr != nil {
				return nil, fmt.Errorf("failed to load exchange: %w", gerr)
			}
			return s.applyPayment(winner, req)
		}
		return nil, fmt.Errorf("failed to create exchange: %w", err)
	}

	return exchange, nil
}

// applyPayment overwrites a pending exchange with the caller's settlement
// details. Settled exchanges are immutable.
func (s *service) applyPayment(exchange *models.Exchange, req PaymentRequest) (*models.Exchange, error) {
	if exchange.Status == models.ExchangeStatusCompleted {
		return nil, ErrAlreadySettled
	}

	exchange.Amount = req.Amount
	exchange.UpiID = req.UpiID
	exchange.QRCodeURL = req.QRCodeURL
	if req.Metadata != nil {
		exchange.Metadata = req.Metadata
	}
	if err := s.exchanges.Update(exchange); err != nil {
		return nil, fmt.Errorf("failed to update exchange: %w", err)
	}
	return exchange, nil
}

func (s *service) MarkSettled(ctx context.Context, exchangeID string) (*models.Exchange, error) {
	exchange, err := s.exchanges.GetByID(exchangeID)
	if err != nil {
		if errors.Is(err, repositories.ErrExchangeNotFound) {
			return nil, ErrExchangeNotFound
		}
		return nil, fmt.Errorf("failed to load exchange: %w", err)
	}

	if exchange.Status == models.ExchangeStatusCompleted {
		return exchange, nil
	}

	exchange.Status = models.ExchangeStatusCompleted
	if err := s.exchanges.Update(exchange); err != nil {
		return nil, fmt.Errorf("failed to settle exchange: %w", err)
	}
	return exchange, nil
}

func (s *service) GetForDeal(ctx context.Context, dealID string) (*models.Exchange, error) {
	exchange, err := s.exchanges.GetByDealID(dealID)
	if err != nil {
		if errors.Is(err, repositories.ErrExchangeNotFound) {
			return nil, ErrExchangeNotFound
		}
		return nil, fmt.Errorf("failed to get exchange: %w", err)
	}
	return exchange, nil
}
