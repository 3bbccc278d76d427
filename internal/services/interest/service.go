// Package interest tracks which users want to transact on which posts.
package interest

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// Service defines the interest tracking operations.
type Service interface {
	// ExpressInterest records that the user wants the post. Duplicates are
	// rejected by the storage-layer unique constraint, never by a
	// check-then-insert.
	ExpressInterest(ctx context.Context, userID, postID string) (*models.Interest, error)

	// ListInterestedUsers returns the post's interested users ordered by
	// when they expressed interest, earliest first.
	ListInterestedUsers(ctx context.Context, postID string) ([]models.User, error)

	// WithdrawInterest removes the user's interest; absence is not an error.
	WithdrawInterest(ctx context.Context, userID, postID string) error
}

type service struct {
	interests repositories.InterestRepository
	posts     repositories.PostRepository
}

// NewService creates a new interest service
func NewService(interests repositories.InterestRepository, posts repositories.PostRepository) Service {
	if interests == nil {
		panic("interest repository is required")
	}
	if posts == nil {
		panic("post repository is required")
	}

	return &service{
		interests: interests,
		posts:     posts,
	}
}

func (s *service) ExpressInterest(ctx context.Context, userID, postID string) (*models.Interest, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if !post.Available() {
		return nil, ErrPostUnavailable
	}
	if post.UserID == userID {
		return nil, ErrOwnPost
	}

	interest := &models.Interest{
		UserID: userID,
		PostID: postID,
	}
	if err := s.interests.Create(interest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateInterest) {
			return nil, ErrDuplicateInterest
		}
		return nil, fmt.Errorf("failed to express interest: %w", err)
	}

	return interest, nil
}

func (s *service) ListInterestedUsers(ctx context.Context, postID string) ([]models.User, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	users, err := s.interests.ListUsersForPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interested users: %w", err)
	}
	return users, nil
}

func (s *service) WithdrawInterest(ctx context.Context, userID, postID string) error {
	if err := s.interests.Delete(userID, postID); err != nil {
		return fmt.Errorf("failed to withdraw interest: %w", err)
	}
	return nil
}
