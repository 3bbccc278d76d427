package post

import (
	"context"
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepo) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepo) List() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCategoryPosts(ctx context.Context, categoryID string) ([]models.Post, bool, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Bool(1), args.Error(2)
}

func (m *MockCache) CacheCategoryPosts(ctx context.Context, categoryID string, posts []models.Post) error {
	args := m.Called(ctx, categoryID, posts)
	return args.Error(0)
}

func (m *MockCache) InvalidateCategoryPosts(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func validCreateReq() CreatePostRequest {
	return CreatePostRequest{
		Type:       models.PostTypeListing,
		Title:      "Wooden bookshelf",
		Price:      40.0,
		PriceUnit:  "fixed",
		Location:   "Sector 12",
		Urgency:    models.UrgencyLow,
		CategoryID: "cat-furniture",
		UserID:     "owner-1",
	}
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreatePostRequest)
		setupMock func(*MockPostRepo, *MockCategoryRepo, *MockUserRepo)
		wantErr   error
	}{
		{
			name: "creates active listing",
			setupMock: func(posts *MockPostRepo, categories *MockCategoryRepo, users *MockUserRepo) {
				categories.On("GetByID", "cat-furniture").Return(&models.Category{ID: "cat-furniture"}, nil)
				users.On("GetByID", "owner-1").Return(&models.User{ID: "owner-1"}, nil)
				posts.On("Create", mock.Anything).Return(nil)
			},
		},
		{
			name:      "rejects unknown type",
			mutate:    func(r *CreatePostRequest) { r.Type = "AUCTION" },
			setupMock: func(posts *MockPostRepo, categories *MockCategoryRepo, users *MockUserRepo) {},
			wantErr:   ErrInvalidPostType,
		},
		{
			name:      "rejects unknown urgency",
			mutate:    func(r *CreatePostRequest) { r.Urgency = "ASAP" },
			setupMock: func(posts *MockPostRepo, categories *MockCategoryRepo, users *MockUserRepo) {},
			wantErr:   ErrInvalidUrgency,
		},
		{
			name:      "rejects negative price",
			mutate:    func(r *CreatePostRequest) { r.Price = -1 },
			setupMock: func(posts *MockPostRepo, categories *MockCategoryRepo, users *MockUserRepo) {},
			wantErr:   ErrInvalidPrice,
		},
		{
			name: "rejects unknown category",
			setupMock: func(posts *MockPostRepo, categories *MockCategoryRepo, users *MockUserRepo) {
				categories.On("GetByID", "cat-furniture").Return(nil, repositories.ErrCategoryNotFound)
			},
			wantErr: ErrCategoryNotFound,
		},
		{
			name: "rejects unknown owner",
			setupMock: func(posts *MockPostRepo, categories *MockCategoryRepo, users *MockUserRepo) {
				categories.On("GetByID", "cat-furniture").Return(&models.Category{ID: "cat-furniture"}, nil)
				users.On("GetByID", "owner-1").Return(nil, repositories.ErrUserNotFound)
			},
			wantErr: ErrOwnerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostRepo)
			categories := new(MockCategoryRepo)
			users := new(MockUserRepo)
			tt.setupMock(posts, categories, users)

			req := validCreateReq()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			s := NewService(posts, categories, users, nil)
			got, err := s.CreatePost(context.Background(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.PostStatusActive, got.Status)
				assert.Equal(t, models.PostTypeListing, got.Type)
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestCreatePostRequestType(t *testing.T) {
	posts := new(MockPostRepo)
	categories := new(MockCategoryRepo)
	users := new(MockUserRepo)

	categories.On("GetByID", "cat-furniture").Return(&models.Category{ID: "cat-furniture"}, nil)
	users.On("GetByID", "owner-1").Return(&models.User{ID: "owner-1"}, nil)
	posts.On("Create", mock.Anything).Return(nil)

	req := validCreateReq()
	req.Type = models.PostTypeRequest

	s := NewService(posts, categories, users, nil)
	got, err := s.CreatePost(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, models.PostTypeRequest, got.Type)
}

func TestListCategoryPostsCacheHit(t *testing.T) {
	posts := new(MockPostRepo)
	cache := new(MockCache)

	cached := []models.Post{{ID: "post-1"}}
	cache.On("GetCategoryPosts", mock.Anything, "cat-1").Return(cached, true, nil)

	s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), cache)
	got, err := s.ListCategoryPosts(context.Background(), "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	posts.AssertNotCalled(t, "ListByCategory", mock.Anything)
}

func TestListCategoryPostsCacheMiss(t *testing.T) {
	posts := new(MockPostRepo)
	cache := new(MockCache)

	fromDB := []models.Post{{ID: "post-1"}, {ID: "post-2"}}
	cache.On("GetCategoryPosts", mock.Anything, "cat-1").Return(nil, false, nil)
	posts.On("ListByCategory", "cat-1").Return(fromDB, nil)
	cache.On("CacheCategoryPosts", mock.Anything, "cat-1", fromDB).Return(nil)

	s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), cache)
	got, err := s.ListCategoryPosts(context.Background(), "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, fromDB, got)
	cache.AssertExpectations(t)
}

func TestListCategoryPostsWithNilConcreteCache(t *testing.T) {
	posts := new(MockPostRepo)
	fromDB := []models.Post{{ID: "post-1"}}
	posts.On("ListByCategory", "cat-1").Return(fromDB, nil)

	var nilCache *cache.CacheService
	s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), nilCache)
	got, err := s.ListCategoryPosts(context.Background(), "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, fromDB, got)
}

func TestListCategoryPostsUnknownCategoryIsEmpty(t *testing.T) {
	posts := new(MockPostRepo)
	posts.On("ListByCategory", "no-such-category").Return([]models.Post{}, nil)

	s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), nil)
	got, err := s.ListCategoryPosts(context.Background(), "no-such-category")

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdatePost(t *testing.T) {
	newTitle := "Oak bookshelf"
	newPrice := 55.0

	tests := []struct {
		name    string
		post    *models.Post
		userID  string
		req     UpdatePostRequest
		wantErr error
	}{
		{
			name:   "owner edits active post",
			post:   &models.Post{ID: "post-1", UserID: "owner-1", CategoryID: "cat-1", Status: models.PostStatusActive},
			userID: "owner-1",
			req:    UpdatePostRequest{Title: &newTitle, Price: &newPrice},
		},
		{
			name:    "non-owner rejected",
			post:    &models.Post{ID: "post-1", UserID: "owner-1", Status: models.PostStatusActive},
			userID:  "intruder",
			req:     UpdatePostRequest{Title: &newTitle},
			wantErr: ErrNotOwner,
		},
		{
			name:    "fulfilled post frozen",
			post:    &models.Post{ID: "post-1", UserID: "owner-1", Status: models.PostStatusFullfilled},
			userID:  "owner-1",
			req:     UpdatePostRequest{Title: &newTitle},
			wantErr: ErrPostNotEditable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostRepo)
			posts.On("GetByID", "post-1").Return(tt.post, nil)
			if tt.wantErr == nil {
				posts.On("Update", mock.Anything).Return(nil)
			}

			s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), nil)
			got, err := s.UpdatePost(context.Background(), "post-1", tt.userID, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, newTitle, got.Title)
				assert.Equal(t, newPrice, got.Price)
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestDeletePostIsSoft(t *testing.T) {
	posts := new(MockPostRepo)
	posts.On("GetByID", "post-1").Return(&models.Post{
		ID: "post-1", UserID: "owner-1", CategoryID: "cat-1", Status: models.PostStatusActive,
	}, nil)
	posts.On("UpdateStatus", "post-1", models.PostStatusDeleted).Return(nil)

	s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), nil)
	err := s.DeletePost(context.Background(), "post-1", "owner-1")

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestDeletePostNotOwner(t *testing.T) {
	posts := new(MockPostRepo)
	posts.On("GetByID", "post-1").Return(&models.Post{
		ID: "post-1", UserID: "owner-1", Status: models.PostStatusActive,
	}, nil)

	s := NewService(posts, new(MockCategoryRepo), new(MockUserRepo), nil)
	err := s.DeletePost(context.Background(), "post-1", "intruder")

	assert.ErrorIs(t, err, ErrNotOwner)
	posts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}
