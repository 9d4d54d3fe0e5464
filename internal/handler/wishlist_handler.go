package handler

import (
	"errors"

	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WishlistHandler struct {
	wishlist service.WishlistService
	checkout service.CheckoutService
}

func NewWishlistHandler(wishlist service.WishlistService, checkout service.CheckoutService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, checkout: checkout}
}

type wishlistRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"uuid_required"`
	Quantity int       `json:"quantity"`
}

// Toggle adds the item or, when it is already wishlisted, removes it.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	result, err := h.wishlist.Toggle(currentUserID(c), req.ItemID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return response.NotFound(c, "Item not found")
		}
		return response.Error(c, "Wishlist update failed")
	}
	return response.SuccessWithData(c, result.Message, result)
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.wishlist.List(currentUserID(c))
	if err != nil {
		return response.Error(c, "Could not load wishlist")
	}
	return response.SuccessWithData(c, "Wishlist", items)
}

type checkoutRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

func (h *WishlistHandler) AddToCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	entry, err := h.checkout.Upsert(currentUserID(c), req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return response.NotFound(c, "Item not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be greater than zero")
		}
		return response.Error(c, "Checkout update failed")
	}
	return response.SuccessWithData(c, "Item added to checkout", entry)
}

func (h *WishlistHandler) ListCheckout(c *fiber.Ctx) error {
	items, err := h.checkout.List(currentUserID(c))
	if err != nil {
		return response.Error(c, "Could not load checkout")
	}
	return response.SuccessWithData(c, "Checkout", items)
}

func (h *WishlistHandler) RemoveFromCheckout(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid checkout entry id")
	}
	if err := h.checkout.Remove(currentUserID(c), entryID); err != nil {
		return response.Error(c, "Checkout removal failed")
	}
	return response.Success(c, "Item removed from checkout")
}

func (h *WishlistHandler) ClearCheckout(c *fiber.Ctx) error {
	if err := h.checkout.Clear(currentUserID(c)); err != nil {
		return response.Error(c, "Could not clear checkout")
	}
	return response.Success(c, "Checkout cleared")
}
