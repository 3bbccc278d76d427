package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services/post"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// stubPostService backs the handler tests with an in-memory category map.
type stubPostService struct {
	posts map[string][]models.Post
	fail  bool
}

func newStubPostService() *stubPostService {
	return &stubPostService{posts: make(map[string][]models.Post)}
}

func (s *stubPostService) ListCategoryPosts(ctx context.Context, categoryID string) ([]models.Post, error) {
	if s.fail {
		return nil, assert.AnError
	}
	return s.posts[categoryID], nil
}

func (s *stubPostService) CreatePost(ctx context.Context, req post.CreatePostRequest) (*models.Post, error) {
	return nil, assert.AnError
}

func (s *stubPostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return nil, assert.AnError
}

func (s *stubPostService) ListPosts(ctx context.Context, filter repositories.PostFilter, limit, offset int) ([]models.Post, int64, error) {
	return nil, 0, assert.AnError
}

func (s *stubPostService) UpdatePost(ctx context.Context, id, userID string, req post.UpdatePostRequest) (*models.Post, error) {
	return nil, assert.AnError
}

func (s *stubPostService) DeletePost(ctx context.Context, id, userID string) error {
	return assert.AnError
}

func newCategoryPostsApp(svc post.Service) *fiber.App {
	app := fiber.New()
	h := NewPostHandler(svc)
	app.Post("/api/categoryPosts", h.GetCategoryPosts)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(data, &decoded))
	return resp.StatusCode, decoded
}

func TestGetCategoryPostsReturnsPosts(t *testing.T) {
	svc := newStubPostService()
	svc.posts["cat-furniture"] = []models.Post{
		{ID: "post-1", Title: "Bookshelf", CategoryID: "cat-furniture"},
	}

	app := newCategoryPostsApp(svc)
	status, body := postJSON(t, app, "/api/categoryPosts", fiber.Map{"categoryId": "cat-furniture"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	posts := body["posts"].([]any)
	assert.Len(t, posts, 1)
}

func TestGetCategoryPostsUnknownCategoryIsEmptyList(t *testing.T) {
	app := newCategoryPostsApp(newStubPostService())
	status, body := postJSON(t, app, "/api/categoryPosts", fiber.Map{"categoryId": "cat-1"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	posts, ok := body["posts"].([]any)
	assert.True(t, ok)
	assert.Empty(t, posts)
}

func TestGetCategoryPostsMissingCategoryID(t *testing.T) {
	app := newCategoryPostsApp(newStubPostService())
	status, body := postJSON(t, app, "/api/categoryPosts", fiber.Map{})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Category ID is required", body["error"])
}

func TestGetCategoryPostsMalformedBody(t *testing.T) {
	app := newCategoryPostsApp(newStubPostService())

	req := httptest.NewRequest(fiber.MethodPost, "/api/categoryPosts", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetCategoryPostsServiceFailure(t *testing.T) {
	svc := newStubPostService()
	svc.fail = true

	app := newCategoryPostsApp(svc)
	status, body := postJSON(t, app, "/api/categoryPosts", fiber.Map{"categoryId": "cat-1"})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to fetch category posts", body["error"])
}
