package handlers

import (
	"errors"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categories repositories.CategoryRepository
}

func NewCategoryHandler(categories repositories.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := h.categories.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCategory) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created successfully",
		"data":    category,
	})
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List()
	if err != nil {
		return response.ServerError(c, "Failed to retrieve categories")
	}
	return response.Success(c, "Categories retrieved successfully", categories)
}
