package handlers

import (
	"bazaar/internal/models"
	"bazaar/internal/services/exchange"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ExchangeHandler struct {
	exchangeService exchange.Service
}

func NewExchangeHandler(exchangeService exchange.Service) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

func (h *ExchangeHandler) RecordPayment(c *fiber.Ctx) error {
	var input struct {
		BuyerID   string      `json:"buyerId"`
		Amount    float64     `json:"amount"`
		UpiID     string      `json:"upiId"`
		QRCodeURL string      `json:"qrCodeUrl"`
		Metadata  models.JSON `json:"metadata"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.BuyerID == "" || input.UpiID == "" {
		return response.BadRequest(c, "Buyer ID and UPI ID are required")
	}

	recorded, err := h.exchangeService.RecordPayment(c.Context(), exchange.PaymentRequest{
		DealID:    c.Params("id"),
		BuyerID:   input.BuyerID,
		Amount:    input.Amount,
		UpiID:     input.UpiID,
		QRCodeURL: input.QRCodeURL,
		Metadata:  input.Metadata,
	})
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment recorded successfully",
		"data":    recorded,
	})
}

func (h *ExchangeHandler) MarkSettled(c *fiber.Ctx) error {
	settled, err := h.exchangeService.MarkSettled(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Exchange settled", settled)
}

func (h *ExchangeHandler) GetDealExchange(c *fiber.Ctx) error {
	found, err := h.exchangeService.GetForDeal(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}
	return response.Success(c, "Exchange retrieved successfully", found)
}
