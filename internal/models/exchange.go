package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exchange statuses
const (
	ExchangeStatusPending   = "PENDING"
	ExchangeStatusCompleted = "COMPLETED"
)

// Exchange records the monetary handoff for a deal. It is an audit record:
// settling an exchange never completes the deal, OTP validation does.
type Exchange struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	DealID    string  `gorm:"size:36;not null;uniqueIndex" json:"dealId"`
	Deal      *Deal   `gorm:"foreignKey:DealID" json:"-"`
	BuyerID   string  `gorm:"size:36;not null;index" json:"buyerId"`
	Buyer     *User   `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Amount    float64 `gorm:"not null" json:"amount"`
	UpiID     string  `gorm:"not null" json:"upiId"`
	QRCodeURL string  `json:"qrCodeUrl,omitempty"`
	Status    string  `gorm:"not null;default:'PENDING'" json:"status"`
	Metadata  JSON    `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Exchange) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
