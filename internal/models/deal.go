package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deal statuses
const (
	DealStatusPending   = "PENDING"
	DealStatusConfirmed = "CONFIRMED"
	DealStatusCompleted = "COMPLETED"
	DealStatusCancelled = "CANCELLED"
)

// dealTransitions lists the allowed next statuses for each deal status.
// COMPLETED and CANCELLED are terminal.
var dealTransitions = map[string][]string{
	DealStatusPending:   {DealStatusConfirmed, DealStatusCompleted, DealStatusCancelled},
	DealStatusConfirmed: {DealStatusCompleted, DealStatusCancelled},
	DealStatusCompleted: {},
	DealStatusCancelled: {},
}

// CanTransitionDeal reports whether a deal may move from one status to another.
func CanTransitionDeal(from, to string) bool {
	for _, next := range dealTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Deal binds a post to the one buyer its owner selected. The partial unique
// index keeps at most one non-cancelled deal per post; a cancelled deal stays
// around for audit but frees the post for another selection.
type Deal struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	PostID       string `gorm:"size:36;not null;uniqueIndex:idx_deals_live_post,where:status <> 'CANCELLED'" json:"postId"`
	Post         *Post  `gorm:"foreignKey:PostID" json:"post,omitempty"`
	UserID       string `gorm:"size:36;not null;index" json:"userId"`
	User         *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status       string `gorm:"not null;default:'PENDING'" json:"status"`
	CancelReason string `json:"cancelReason,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Terminal reports whether the deal is in a final state.
func (d *Deal) Terminal() bool {
	return d.Status == DealStatusCompleted || d.Status == DealStatusCancelled
}
