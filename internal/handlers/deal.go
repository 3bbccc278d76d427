package handlers

import (
	"bazaar/internal/services/deal"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DealHandler struct {
	dealService deal.Service
}

func NewDealHandler(dealService deal.Service) *DealHandler {
	return &DealHandler{dealService: dealService}
}

// OpenDeal lets a post owner select one interested user as buyer. The OTP
// for out-of-band confirmation is issued in the same transaction.
func (h *DealHandler) OpenDeal(c *fiber.Ctx) error {
	var input struct {
		PostID string `json:"postId"`
		UserID string `json:"userId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.PostID == "" || input.UserID == "" {
		return response.BadRequest(c, "Post ID and user ID are required")
	}

	opened, err := h.dealService.OpenDeal(c.Context(), input.PostID, input.UserID)
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Deal opened successfully",
		"data":    opened,
	})
}

func (h *DealHandler) ConfirmDeal(c *fiber.Ctx) error {
	confirmed, err := h.dealService.ConfirmDeal(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Deal confirmed", confirmed)
}

func (h *DealHandler) CancelDeal(c *fiber.Ctx) error {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return response.BadRequest(c, "Invalid request format")
	}

	cancelled, err := h.dealService.CancelDeal(c.Context(), c.Params("id"), input.Reason)
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Deal cancelled", cancelled)
}

func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	found, err := h.dealService.GetDeal(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Deal retrieved successfully", found)
}

func (h *DealHandler) GetPostDeal(c *fiber.Ctx) error {
	found, err := h.dealService.GetDealForPost(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Deal retrieved successfully", found)
}
