package handler

import (
	"go-market-api/internal/service"
	"go-market-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type RedeemHandler struct {
	loyalty service.LoyaltyLedger
}

func NewRedeemHandler(loyalty service.LoyaltyLedger) *RedeemHandler {
	return &RedeemHandler{loyalty: loyalty}
}

func (h *RedeemHandler) Entries(c *fiber.Ctx) error {
	entries, err := h.loyalty.Entries(currentUserID(c))
	if err != nil {
		return response.Error(c, "Could not load redeem entries")
	}
	return response.SuccessWithData(c, "Redeem entries", entries)
}

func (h *RedeemHandler) TotalPoints(c *fiber.Ctx) error {
	summary, err := h.loyalty.TotalPoints(currentUserID(c))
	if err != nil {
		return response.Error(c, "Could not compute points")
	}
	return response.SuccessWithData(c, "Total points", summary)
}
