package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interest is a (user, post) pair. The composite unique index makes duplicate
// expressions of interest fail at the storage layer, so concurrent inserts
// for the same pair cannot both win.
type Interest struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_interests_user_post" json:"userId"`
	PostID    string `gorm:"size:36;not null;uniqueIndex:idx_interests_user_post" json:"postId"`
	User      *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post      *Post  `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *Interest) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
