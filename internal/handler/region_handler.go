package handler

import (
	"errors"

	"go-market-api/internal/model"
	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// RegionHandler covers delivery regions: states and their postcodes.
type RegionHandler struct {
	service service.CatalogService
}

func NewRegionHandler(s service.CatalogService) *RegionHandler {
	return &RegionHandler{service: s}
}

func (h *RegionHandler) CreateState(c *fiber.Ctx) error {
	var state model.State
	if err := c.BodyParser(&state); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(state); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	state.CreatedBy = currentUserName(c)

	if err := h.service.CreateState(&state); err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			return response.Conflict(c, "State name already exists")
		}
		return response.Error(c, "State creation failed")
	}
	return response.Created(c, "State created", state)
}

func (h *RegionHandler) ListStates(c *fiber.Ctx) error {
	states, err := h.service.ListStates(c.QueryBool("active", false))
	if err != nil {
		return response.Error(c, "Could not list states")
	}
	return response.SuccessWithData(c, "States", states)
}

func (h *RegionHandler) UpdateState(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid state id")
	}
	var state model.State
	if err := c.BodyParser(&state); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	state.ID = id
	state.UpdatedBy = currentUserName(c)

	if err := h.service.UpdateState(&state); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "State not found")
		}
		return response.Error(c, "State update failed")
	}
	return response.SuccessWithData(c, "State updated", state)
}

func (h *RegionHandler) RemoveState(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid state id")
	}
	if err := h.service.RemoveState(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "State not found")
		}
		return response.Error(c, "State removal failed")
	}
	return response.Success(c, "State removed")
}

func (h *RegionHandler) CreatePostcode(c *fiber.Ctx) error {
	var postcode model.Postcode
	if err := c.BodyParser(&postcode); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(postcode); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}
	postcode.CreatedBy = currentUserName(c)

	if err := h.service.CreatePostcode(&postcode); err != nil {
		switch {
		case errors.Is(err, service.ErrStateNotFound):
			return response.NotFound(c, "State not found")
		case errors.Is(err, service.ErrDuplicatePostcode):
			return response.Conflict(c, "Postcode already exists")
		}
		return response.Error(c, "Postcode creation failed")
	}
	return response.Created(c, "Postcode created", postcode)
}

func (h *RegionHandler) ListPostcodes(c *fiber.Ctx) error {
	postcodes, err := h.service.ListPostcodes()
	if err != nil {
		return response.Error(c, "Could not list postcodes")
	}
	return response.SuccessWithData(c, "Postcodes", postcodes)
}

func (h *RegionHandler) PostcodesByState(c *fiber.Ctx) error {
	stateID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid state id")
	}
	postcodes, err := h.service.PostcodesByState(stateID)
	if err != nil {
		return response.Error(c, "Could not list postcodes")
	}
	return response.SuccessWithData(c, "Postcodes", postcodes)
}

// LookupPostcode answers the storefront's deliverability check.
func (h *RegionHandler) LookupPostcode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return response.BadRequest(c, "Postcode is required")
	}
	postcode, err := h.service.LookupPostcode(code)
	if err != nil {
		return response.NotFound(c, "Delivery is not available for this postcode")
	}
	return response.SuccessWithData(c, "Postcode", postcode)
}

func (h *RegionHandler) UpdatePostcode(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid postcode id")
	}
	var postcode model.Postcode
	if err := c.BodyParser(&postcode); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	postcode.ID = id
	postcode.UpdatedBy = currentUserName(c)

	if err := h.service.UpdatePostcode(&postcode); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Postcode not found")
		}
		return response.Error(c, "Postcode update failed")
	}
	return response.SuccessWithData(c, "Postcode updated", postcode)
}

func (h *RegionHandler) RemovePostcode(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid postcode id")
	}
	if err := h.service.RemovePostcode(id, currentUserName(c)); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return response.NotFound(c, "Postcode not found")
		}
		return response.Error(c, "Postcode removal failed")
	}
	return response.Success(c, "Postcode removed")
}
