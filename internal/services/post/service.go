// Package post manages marketplace listings and requests. Deletion is a
// status flag; rows are kept for audit.
package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"gorm.io/datatypes"
)

// Cache is the subset of the cache service the post service uses.
type Cache interface {
	GetCategoryPosts(ctx context.Context, categoryID string) ([]models.Post, bool, error)
	CacheCategoryPosts(ctx context.Context, categoryID string, posts []models.Post) error
	InvalidateCategoryPosts(ctx context.Context, categoryID string) error
}

// CreatePostRequest carries the fields for a new post.
type CreatePostRequest struct {
	Type        string
	Title       string
	Description string
	Images      []string
	Price       float64
	PriceUnit   string
	Location    string
	Urgency     string
	CategoryID  string
	UserID      string
}

// UpdatePostRequest carries the mutable fields of a post. Nil means
// leave unchanged.
type UpdatePostRequest struct {
	Title       *string
	Description *string
	Images      []string
	Price       *float64
	PriceUnit   *string
	Location    *string
	Urgency     *string
}

// Service defines the post operations.
type Service interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListCategoryPosts(ctx context.Context, categoryID string) ([]models.Post, error)
	ListPosts(ctx context.Context, filter repositories.PostFilter, limit, offset int) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, id, userID string, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id, userID string) error
}

type service struct {
	posts      repositories.PostRepository
	categories repositories.CategoryRepository
	users      repositories.UserRepository
	cache      Cache
}

// NewService creates a new post service
func NewService(
	posts repositories.PostRepository,
	categories repositories.CategoryRepository,
	users repositories.UserRepository,
	cache Cache,
) Service {
	if posts == nil {
		panic("post repository is required")
	}
	if categories == nil {
		panic("category repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}

	return &service{
		posts:      posts,
		categories: categories,
		users:      users,
		cache:      cache,
	}
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if req.Type != models.PostTypeListing && req.Type != models.PostTypeRequest {
		return nil, ErrInvalidPostType
	}
	if req.Urgency != "" && !validUrgency(req.Urgency) {
		return nil, ErrInvalidUrgency
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	if _, err := s.categories.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if _, err := s.users.GetByID(req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	images, err := json.Marshal(req.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	post := &models.Post{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Images:      datatypes.JSON(images),
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		Location:    req.Location,
		Urgency:     req.Urgency,
		Status:      models.PostStatusActive,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidateCategory(ctx, post.CategoryID)
	return post, nil
}

func (s *service) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *service) ListCategoryPosts(ctx context.Context, categoryID string) ([]models.Post, error) {
	if s.cache != nil {
		if posts, found, err := s.cache.GetCategoryPosts(ctx, categoryID); err == nil && found {
			return posts, nil
		}
	}

	posts, err := s.posts.ListByCategory(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category posts: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheCategoryPosts(ctx, categoryID, posts); err != nil {
			log.Printf("failed to cache category posts: %v", err)
		}
	}
	return posts, nil
}

func (s *service) ListPosts(ctx context.Context, filter repositories.PostFilter, limit, offset int) ([]models.Post, int64, error) {
	return s.posts.List(filter, limit, offset)
}

func (s *service) UpdatePost(ctx context.Context, id, userID string, req UpdatePostRequest) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}
	if post.Status != models.PostStatusActive {
		return nil, ErrPostNotEditable
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Images != nil {
		images, err := json.Marshal(req.Images)
		if err != nil {
			return nil, fmt.Errorf("failed to encode images: %w", err)
		}
		post.Images = datatypes.JSON(images)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		post.Price = *req.Price
	}
	if req.PriceUnit != nil {
		post.PriceUnit = *req.PriceUnit
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Urgency != nil {
		if *req.Urgency != "" && !validUrgency(*req.Urgency) {
			return nil, ErrInvalidUrgency
		}
		post.Urgency = *req.Urgency
	}

	if err := s.posts.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.invalidateCategory(ctx, post.CategoryID)
	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id, userID string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	if err := s.posts.UpdateStatus(id, models.PostStatusDeleted); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.invalidateCategory(ctx, post.CategoryID)
	return nil
}

func (s *service) invalidateCategory(ctx context.Context, categoryID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCategoryPosts(ctx, categoryID); err != nil {
		log.Printf("failed to invalidate category posts cache: %v", err)
	}
}

func validUrgency(u string) bool {
	return u == models.UrgencyLow || u == models.UrgencyMedium || u == models.UrgencyHigh
}
