package handlers

import (
	"bazaar/internal/services/otp"
	"bazaar/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type OTPHandler struct {
	otpService otp.Service
}

func NewOTPHandler(otpService otp.Service) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// IssueOTP generates a fresh confirmation code for a deal, replacing any
// previous one. The code is returned to the seller, who relays it to the
// buyer out-of-band.
func (h *OTPHandler) IssueOTP(c *fiber.Ctx) error {
	issued, err := h.otpService.Issue(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "OTP issued successfully",
		"data": fiber.Map{
			"dealId":    issued.DealID,
			"code":      issued.Code,
			"expiresAt": issued.ExpiresAt,
		},
	})
}

// ValidateOTP checks the submitted code; on success the deal is COMPLETED
// and its post FULLFILLED.
func (h *OTPHandler) ValidateOTP(c *fiber.Ctx) error {
	var input struct {
		Code string `json:"code"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Code == "" {
		return response.BadRequest(c, "Code is required")
	}

	completed, err := h.otpService.Validate(c.Context(), c.Params("id"), input.Code)
	if err != nil {
		return response.Error(c, statusFor(err), err.Error())
	}

	return response.Success(c, "Deal completed successfully", completed)
}
