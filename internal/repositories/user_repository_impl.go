package repositories

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/models"
	"bazaar/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	// Try cache first
	if r.cache != nil {
		var cached models.User
		key := r.cache.GenerateKey("user", "id", id)
		if found, err := r.cache.Get(context.Background(), key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	var user models.User
	err := withReadRetry("get user", id, func() error {
		return r.db.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		_ = r.cache.Set(context.Background(), key, &user)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := withReadRetry("get user by email", email, func() error {
		return r.db.Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", user.ID)
		_ = r.cache.Delete(context.Background(), key)
	}
	return nil
}

func (r *userRepository) List(offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	if err := withReadRetry("count users", "all", func() error {
		return r.db.Model(&models.User{}).Count(&total).Error
	}); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	err := withReadRetry("list users", "all", func() error {
		return r.db.Order("created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&users).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}
