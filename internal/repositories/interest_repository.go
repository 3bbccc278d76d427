package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInterestNotFound  = errors.New("interest not found")
	ErrDuplicateInterest = errors.New("interest already expressed for this post")
)

// InterestRepository defines the interface for interest-related database operations
type InterestRepository interface {
	// Create inserts an interest row; the (user_id, post_id) unique index
	// rejects duplicates atomically
	Create(interest *models.Interest) error

	// Exists reports whether the user has an interest row for the post
	Exists(userID, postID string) (bool, error)

	// Delete removes an interest; deleting an absent row is not an error
	Delete(userID, postID string) error

	// ListUsersForPost returns users interested in a post, first come first
	ListUsersForPost(postID string) ([]models.User, error)
}

type interestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(interest *models.Interest) error {
	if err := r.db.Create(interest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateInterest
		}
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

func (r *interestRepository) Exists(userID, postID string) (bool, error) {
	var count int64
	err := withReadRetry("check interest", userID+":"+postID, func() error {
		return r.db.Model(&models.Interest{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to check interest: %w", err)
	}
	return count > 0, nil
}

func (r *interestRepository) Delete(userID, postID string) error {
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Interest{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete interest: %w", err)
	}
	return nil
}

func (r *interestRepository) ListUsersForPost(postID string) ([]models.User, error) {
	var users []models.User
	err := withReadRetry("list interested users", postID, func() error {
		return r.db.Model(&models.User{}).
			Joins("JOIN interests ON interests.user_id = users.id").
			Where("interests.post_id = ?", postID).
			Order("interests.created_at ASC").
			Find(&users).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list interested users: %w", err)
	}
	return users, nil
}
