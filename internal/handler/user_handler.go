package handler

import (
	"errors"

	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.Error(c, "Could not load profile")
	}
	return response.SuccessWithData(c, "Profile", user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	user, err := h.service.UpdateProfile(currentUserID(c), in)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.Error(c, "Profile update failed")
	}
	return response.SuccessWithData(c, "Profile updated", user)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return response.Error(c, "Could not list users")
	}
	return response.SuccessWithData(c, "Users", users)
}
