package handler

import (
	"errors"

	"go-market-api/internal/model"
	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// UnitHandler covers measurement units and search filters.
type UnitHandler struct {
	service service.CatalogService
}

func NewUnitHandler(s service.CatalogService) *UnitHandler {
	return &UnitHandler{service: s}
}

func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var unit model.Unit
	if err := c.BodyParser(&unit); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(unit); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	unit.CreatedBy = currentUserName(c)

	if err := h.service.CreateUnit(&unit); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			return response.Conflict(c, "Unit name already exists")
		}
		return response.Error(c, "Unit creation failed")
	}
	return response.Created(c, "Unit created", unit)
}

func (h *UnitHandler) ListUnits(c *fiber.Ctx) error {
	units, err := h.service.ListUnits()
	if err != nil {
		return response.Error(c, "Could not list units")
	}
	return response.SuccessWithData(c, "Units", units)
}

func (h *UnitHandler) UpdateUnit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid unit id")
	}
	var unit model.Unit
	if err := c.BodyParser(&unit); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	unit.ID = id
	unit.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateUnit(&unit); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Unit not found")
		}
		return response.Error(c, "Unit update failed")
	}
	return response.SuccessWithData(c, "Unit updated", unit)
}

func (h *UnitHandler) RemoveUnit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid unit id")
	}
	if err := h.service.RemoveUnit(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Unit not found")
		}
		return response.Error(c, "Unit removal failed")
	}
	return response.Success(c, "Unit removed")
}

func (h *UnitHandler) CreateFilter(c *fiber.Ctx) error {
	var filter model.Filter
	if err := c.BodyParser(&filter); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(filter); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	filter.CreatedBy = currentUserName(c)

	if err := h.service.CreateFilter(&filter); err != nil {
		return response.Error(c, "Filter creation failed")
	}
	return response.Created(c, "Filter created", filter)
}

func (h *UnitHandler) ListFilters(c *fiber.Ctx) error {
	filters, err := h.service.ListFilters()
	if err != nil {
		return response.Error(c, "Could not list filters")
	}
	return response.SuccessWithData(c, "Filters", filters)
}

func (h *UnitHandler) UpdateFilter(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid filter id")
	}
	var filter model.Filter
	if err := c.BodyParser(&filter); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	filter.ID = id
	filter.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateFilter(&filter); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Filter not found")
		}
		return response.Error(c, "Filter update failed")
	}
	return response.SuccessWithData(c, "Filter updated", filter)
}

func (h *UnitHandler) RemoveFilter(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid filter id")
	}
	if err := h.service.RemoveFilter(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Filter not found")
		}
		return response.Error(c, "Filter removal failed")
	}
	return response.Success(c, "Filter removed")
}
