package interest

import (
	"context"
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInterestRepo struct {
	mock.Mock
}

func (m *MockInterestRepo) Create(interest *models.Interest) error {
	args := m.Called(interest)
	return args.Error(0)
}

func (m *MockInterestRepo) Exists(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterestRepo) Delete(userID, postID string) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockInterestRepo) ListUsersForPost(postID string) ([]models.User, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepo) GetByID(id string) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepo) List(filter repositories.PostFilter, limit, offset int) ([]models.Post, int64, error) {
	args := m.Called(filter, limit, offset)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepo) ListByCategory(categoryID string) ([]models.Post, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepo) Update(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepo) UpdateStatus(postID, status string) error {
	args := m.Called(postID, status)
	return args.Error(0)
}

func TestExpressInterest(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockInterestRepo, *MockPostRepo)
		wantErr   error
	}{
		{
			name: "records interest on an active post",
			setupMock: func(interests *MockInterestRepo, posts *MockPostRepo) {
				posts.On("GetByID", "post-1").Return(&models.Post{
					ID: "post-1", UserID: "owner-1", Status: models.PostStatusActive,
				}, nil)
				interests.On("Create", mock.Anything).Return(nil)
			},
		},
		{
			name: "post not found",
			setupMock: func(interests *MockInterestRepo, posts *MockPostRepo) {
				posts.On("GetByID", "post-1").Return(nil, repositories.ErrPostNotFound)
			},
			wantErr: ErrPostNotFound,
		},
		{
			name: "fulfilled post rejects interest",
			setupMock: func(interests *MockInterestRepo, posts *MockPostRepo) {
				posts.On("GetByID", "post-1").Return(&models.Post{
					ID: "post-1", UserID: "owner-1", Status: models.PostStatusFullfilled,
				}, nil)
			},
			wantErr: ErrPostUnavailable,
		},
		{
			name: "owner cannot want their own post",
			setupMock: func(interests *MockInterestRepo, posts *MockPostRepo) {
				posts.On("GetByID", "post-1").Return(&models.Post{
					ID: "post-1", UserID: "buyer-1", Status: models.PostStatusActive,
				}, nil)
			},
			wantErr: ErrOwnPost,
		},
		{
			name: "duplicate interest rejected by the unique constraint",
			setupMock: func(interests *MockInterestRepo, posts *MockPostRepo) {
				posts.On("GetByID", "post-1").Return(&models.Post{
					ID: "post-1", UserID: "owner-1", Status: models.PostStatusActive,
				}, nil)
				interests.On("Create", mock.Anything).Return(repositories.ErrDuplicateInterest)
			},
			wantErr: ErrDuplicateInterest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interests := new(MockInterestRepo)
			posts := new(MockPostRepo)
			tt.setupMock(interests, posts)

			s := NewService(interests, posts)
			got, err := s.ExpressInterest(context.Background(), "buyer-1", "post-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "buyer-1", got.UserID)
				assert.Equal(t, "post-1", got.PostID)
			}
			interests.AssertExpectations(t)
			posts.AssertExpectations(t)
		})
	}
}

func TestListInterestedUsersOrdered(t *testing.T) {
	interests := new(MockInterestRepo)
	posts := new(MockPostRepo)

	posts.On("GetByID", "post-1").Return(&models.Post{ID: "post-1", Status: models.PostStatusActive}, nil)
	interests.On("ListUsersForPost", "post-1").Return([]models.User{
		{ID: "first"}, {ID: "second"},
	}, nil)

	s := NewService(interests, posts)
	users, err := s.ListInterestedUsers(context.Background(), "post-1")

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "first", users[0].ID)
}

func TestListInterestedUsersPostNotFound(t *testing.T) {
	interests := new(MockInterestRepo)
	posts := new(MockPostRepo)
	posts.On("GetByID", "missing").Return(nil, repositories.ErrPostNotFound)

	s := NewService(interests, posts)
	_, err := s.ListInterestedUsers(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestWithdrawInterestIdempotent(t *testing.T) {
	interests := new(MockInterestRepo)
	posts := new(MockPostRepo)
	interests.On("Delete", "buyer-1", "post-1").Return(nil)

	s := NewService(interests, posts)
	err := s.WithdrawInterest(context.Background(), "buyer-1", "post-1")

	assert.NoError(t, err)
	interests.AssertExpectations(t)
}
