package repositories

import (
	"errors"

	"bazaar/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// PostFilter narrows a post listing. Zero values are ignored.
type PostFilter struct {
	CategoryID string
	UserID     string
	Type       string
	Status     string
	Urgency    string
	MinPrice   float64
	MaxPrice   float64
}

// PostRepository defines the interface for post-related database operations
type PostRepository interface {
	// Create creates a new post
	Create(post *models.Post) error

	// GetByID retrieves a post by ID, with category and owner preloaded
	GetByID(id string) (*models.Post, error)

	// List retrieves posts matching the filter, newest first
	List(filter PostFilter, limit, offset int) ([]models.Post, int64, error)

	// ListByCategory retrieves non-deleted posts in a category, newest first
	ListByCategory(categoryID string) ([]models.Post, error)

	// Update updates an existing post
	Update(post *models.Post) error

	// UpdateStatus sets a post's lifecycle status
	UpdateStatus(postID, status string) error
}

// Implementation is in post_repository_impl.go
