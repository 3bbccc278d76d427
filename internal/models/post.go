package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post types
const (
	PostTypeListing = "LISTING"
	PostTypeRequest = "REQUEST"
)

// Post statuses
const (
	PostStatusActive     = "ACTIVE"
	PostStatusDeleted    = "DELETED"
	PostStatusFullfilled = "FULLFILLED"
)

// Urgency levels
const (
	UrgencyLow    = "LOW"
	UrgencyMedium = "MEDIUM"
	UrgencyHigh   = "HIGH"
)

type Post struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Type        string         `gorm:"not null;default:'LISTING'" json:"type"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	Images      datatypes.JSON `json:"images,omitempty"`
	Price       float64        `gorm:"not null;default:0" json:"price"`
	PriceUnit   string         `gorm:"default:''" json:"priceUnit,omitempty"`
	Location    string         `json:"location,omitempty"`
	Urgency     string         `json:"urgency,omitempty"`
	Status      string         `gorm:"not null;default:'ACTIVE';index" json:"status"`
	CategoryID  string         `gorm:"size:36;not null;index" json:"categoryId"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID      string         `gorm:"size:36;not null;index" json:"userId"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Interests []Interest `gorm:"foreignKey:PostID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Available reports whether the post can still accept interests and deals.
func (p *Post) Available() bool {
	return p.Status == PostStatusActive
}
