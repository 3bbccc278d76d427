package handlers

import (
	"errors"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/utils/pagination"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users repositories.UserRepository
}

func NewUserHandler(users repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		UpiID     string `json:"upiId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.FirstName == "" || input.Email == "" {
		return response.BadRequest(c, "First name and email are required")
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		UpiID:     input.UpiID,
	}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user,
	})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "Failed to retrieve user")
	}
	return response.Success(c, "User retrieved successfully", user)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.users.List(p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to retrieve users")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, users))
}
