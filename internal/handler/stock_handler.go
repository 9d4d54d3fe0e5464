package handler

import (
	"errors"

	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	inventory service.InventoryEngine
}

func NewStockHandler(inventory service.InventoryEngine) *StockHandler {
	return &StockHandler{inventory: inventory}
}

func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid item id")
	}
	summary, err := h.inventory.CurrentStock(itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return response.NotFound(c, "Item not found")
		}
		return response.Error(c, "Could not compute stock")
	}
	return response.SuccessWithData(c, "Stock", summary)
}

func (h *StockHandler) MovementHistory(c *fiber.Ctx) error {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid item id")
	}
	movements, err := h.inventory.MovementHistory(itemID)
	if err != nil {
		return response.Error(c, "Could not load movement history")
	}
	return response.SuccessWithData(c, "Movements", movements)
}

func (h *StockHandler) AllStock(c *fiber.Ctx) error {
	summaries, err := h.inventory.AllStock()
	if err != nil {
		return response.Error(c, "Could not compute stock")
	}
	return response.SuccessWithData(c, "Stock", summaries)
}

type adjustmentRequest struct {
	Items []service.AdjustmentItem `json:"items" validate:"required,min=1,dive"`
}

func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var req adjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	if err := h.inventory.AdjustStock(req.Items, currentUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be greater than zero")
		case errors.Is(err, service.ErrInvalidKind):
			return response.BadRequest(c, "Movement status must be 1 (SALE) or 2 (PURCHASE)")
		case errors.Is(err, service.ErrItemNotFound):
			return response.NotFound(c, "Item not found")
		}
		return response.Error(c, "Stock adjustment failed")
	}
	return response.Success(c, "Stock adjusted")
}
