package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"gorm.io/gorm"
)

var (
	ErrExchangeNotFound  = errors.New("exchange not found")
	ErrDuplicateExchange = errors.New("deal already has an exchange")
)

// ExchangeRepository defines the interface for exchange-related database operations
type ExchangeRepository interface {
	Create(exchange *models.Exchange) error
	GetByID(id string) (*models.Exchange, error)
	GetByDealID(dealID string) (*models.Exchange, error)
	Update(exchange *models.Exchange) error
}

type exchangeRepository struct {
	db *gorm.DB
}

func NewExchangeRepository(db *gorm.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Create(exchange *models.Exchange) error {
	if err := r.db.Create(exchange).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateExchange
		}
		return fmt.Errorf("failed to create exchange: %w", err)
	}
	return nil
}

func (r *exchangeRepository) GetByID(id string) (*models.Exchange, error) {
	var exchange models.Exchange
	err := withReadRetry("get exchange", id, func() error {
		return r.db.Where("id = ?", id).First(&exchange).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExchangeNotFound
		}
		return nil, fmt.Errorf("failed to get exchange: %w", err)
	}
	return &exchange, nil
}

func (r *exchangeRepository) GetByDealID(dealID string) (*models.Exchange, error) {
	var exchange models.Exchange
	err := withReadRetry("get exchange by deal", dealID, func() error {
		return r.db.Where("deal_id = ?", dealID).First(&exchange).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExchangeNotFound
		}
		return nil, fmt.Errorf("failed to get exchange: %w", err)
	}
	return &exchange, nil
}

func (r *exchangeRepository) Update(exchange *models.Exchange) error {
	if err := r.db.Save(exchange).Error; err != nil {
		return fmt.Errorf("failed to update exchange: %w", err)
	}
	return nil
}
