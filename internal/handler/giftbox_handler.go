package handler

import (
	"errors"

	"go-market-api/internal/model"
	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type GiftBoxHandler struct {
	service service.CatalogService
}

func NewGiftBoxHandler(s service.CatalogService) *GiftBoxHandler {
	return &GiftBoxHandler{service: s}
}

func (h *GiftBoxHandler) Create(c *fiber.Ctx) error {
	var box model.GiftBox
	if err := c.BodyParser(&box); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(box); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	box.CreatedBy = currentUserName(c)

	if err := h.service.CreateGiftBox(&box); err != nil {
		return response.Error(c, "Gift box creation failed")
	}
	return response.Created(c, "Gift box created", box)
}

func (h *GiftBoxHandler) List(c *fiber.Ctx) error {
	boxes, err := h.service.ListGiftBoxes(c.QueryBool("active", false))
	if err != nil {
		return response.Error(c, "Could not list gift boxes")
	}
	return response.SuccessWithData(c, "Gift boxes", boxes)
}

func (h *GiftBoxHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid gift box id")
	}
	box, err := h.service.GetGiftBox(id)
	if err != nil {
		return response.NotFound(c, "Gift box not found")
	}
	return response.SuccessWithData(c, "Gift box", box)
}

func (h *GiftBoxHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid gift box id")
	}
	var box model.GiftBox
	if err := c.BodyParser(&box); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	box.ID = id
	box.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateGiftBox(&box); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Gift box not found")
		}
		return response.Error(c, "Gift box update failed")
	}
	return response.SuccessWithData(c, "Gift box updated", box)
}

func (h *GiftBoxHandler) Remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid gift box id")
	}
	if err := h.service.RemoveGiftBox(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Gift box not found")
		}
		return response.Error(c, "Gift box removal failed")
	}
	return response.Success(c, "Gift box removed")
}
