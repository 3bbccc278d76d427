package handlers

import (
	"log"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services/post"
	"bazaar/internal/utils/pagination"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	postService post.Service
}

func NewPostHandler(postService post.Service) *PostHandler {
	return &PostHandler{postService: postService}
}

// GetCategoryPosts returns all non-deleted posts in a category, newest
// first, with category and owner embedded.
func (h *PostHandler) GetCategoryPosts(c *fiber.Ctx) error {
	var input struct {
		CategoryID string `json:"categoryId"`
	}

	if err := c.BodyParser(&input); err != nil || input.CategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Category ID is required",
		})
	}

	posts, err := h.postService.ListCategoryPosts(c.Context(), input.CategoryID)
	if err != nil {
		log.Printf("category posts fetch failed for %s: %v", input.CategoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch category posts",
		})
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"posts":   posts,
	})
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var input struct {
		Type        string   `json:"type"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
		Price       float64  `json:"price"`
		PriceUnit   string   `json:"priceUnit"`
		Location    string   `json:"location"`
		Urgency     string   `json:"urgency"`
		CategoryID  string   `json:"categoryId"`
		UserID      string   `json:"userId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Title == "" || input.CategoryID == "" || input.UserID == "" {
		return response.BadRequest(c, "Title, category ID and user ID are required")
	}
	if input.Type == "" {
		input.Type = models.PostTypeListing
	}

	created, err := h.postService.CreatePost(c.Context(), post.CreatePostRequest{
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Images:      input.Images,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		Location:    input.Location,
		Urgency:     input.Urgency,
		CategoryID:  input.CategoryID,
		UserID:      input.UserID,
	})
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"data":    created,
	})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	found, err := h.postService.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Post retrieved successfully", found)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	filter := repositories.PostFilter{
		CategoryID: c.Query("categoryId"),
		UserID:     c.Query("userId"),
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		Urgency:    c.Query("urgency"),
		MinPrice:   c.QueryFloat("minPrice"),
		MaxPrice:   c.QueryFloat("maxPrice"),
	}

	posts, total, err := h.postService.ListPosts(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to retrieve posts")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, posts))
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var input struct {
		UserID      string   `json:"userId"`
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Images      []string `json:"images"`
		Price       *float64 `json:"price"`
		PriceUnit   *string  `json:"priceUnit"`
		Location    *string  `json:"location"`
		Urgency     *string  `json:"urgency"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.UserID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	updated, err := h.postService.UpdatePost(c.Context(), c.Params("id"), input.UserID, post.UpdatePostRequest{
		Title:       input.Title,
		Description: input.Description,
		Images:      input.Images,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		Location:    input.Location,
		Urgency:     input.Urgency,
	})
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return response.Success(c, "Post updated successfully", updated)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	var input struct {
		UserID string `json:"userId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.UserID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	if err := h.postService.DeletePost(c.Context(), c.Params("id"), input.UserID); err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return response.Success(c, "Post deleted successfully", nil)
}
