package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTP is a one-time confirmation code bound to a single deal. Used flips
// false to true exactly once, on successful validation before ExpiresAt.
type OTP struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DealID    string    `gorm:"size:36;not null;uniqueIndex" json:"dealId"`
	Deal      *Deal     `gorm:"foreignKey:DealID" json:"-"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the code is past its expiry.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
