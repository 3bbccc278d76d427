package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := withReadRetry("get post", id, func() error {
		return r.db.Preload("Category").Preload("User").
			Where("id = ?", id).First(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) List(filter PostFilter, limit, offset int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Urgency != "" {
		query = query.Where("urgency = ?", filter.Urgency)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := withReadRetry("count posts", "filtered", func() error {
		return query.Count(&total).Error
	}); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	err := withReadRetry("list posts", "filtered", func() error {
		return query.Preload("Category").Preload("User").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, total, nil
}

func (r *postRepository) ListByCategory(categoryID string) ([]models.Post, error) {
	var posts []models.Post
	err := withReadRetry("list category posts", categoryID, func() error {
		return r.db.Preload("Category").Preload("User").
			Where("category_id = ? AND status <> ?", categoryID, models.PostStatusDeleted).
			Order("created_at DESC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list category posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Update(post *models.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *postRepository) UpdateStatus(postID, status string) error {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", postID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update post status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
