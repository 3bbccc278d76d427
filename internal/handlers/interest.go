package handlers

import (
	"bazaar/internal/services/interest"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type InterestHandler struct {
	interestService interest.Service
}

func NewInterestHandler(interestService interest.Service) *InterestHandler {
	return &InterestHandler{interestService: interestService}
}

func (h *InterestHandler) ExpressInterest(c *fiber.Ctx) error {
	var input struct {
		UserID string `json:"userId"`
		PostID string `json:"postId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.UserID == "" || input.PostID == "" {
		return response.BadRequest(c, "User ID and post ID are required")
	}

	created, err := h.interestService.ExpressInterest(c.Context(), input.UserID, input.PostID)
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Interest recorded successfully",
		"data":    created,
	})
}

func (h *InterestHandler) WithdrawInterest(c *fiber.Ctx) error {
	var input struct {
		UserID string `json:"userId"`
		PostID string `json:"postId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.UserID == "" || input.PostID == "" {
		return response.BadRequest(c, "User ID and post ID are required")
	}

	if err := h.interestService.WithdrawInterest(c.Context(), input.UserID, input.PostID); err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return response.Success(c, "Interest withdrawn", nil)
}

func (h *InterestHandler) ListInterestedUsers(c *fiber.Ctx) error {
	users, err := h.interestService.ListInterestedUsers(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Interested users retrieved successfully", users)
}
