package handler

import (
	"errors"

	"go-market-api/internal/service"
	"go-market-api/pkg/response"
	"go-market-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	user, err := h.service.Register(in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return response.Conflict(c, "Email is already registered")
		}
		if errors.Is(err, service.ErrPhoneTaken) {
			return response.Conflict(c, "Phone number is already registered")
		}
		return response.Error(c, "Registration failed")
	}
	return response.Created(c, "Verification code sent to your email", user)
}

type confirmRequest struct {
	Email string `json:"email_id" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

func (h *AuthHandler) ConfirmRegistration(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	login, err := h.service.ConfirmRegistration(req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, service.ErrInvalidOTP):
			return response.BadRequest(c, "Invalid verification code")
		case errors.Is(err, service.ErrOTPExpired):
			return response.BadRequest(c, "Verification attempts exhausted, request a new code")
		}
		return response.Error(c, "Confirmation failed")
	}
	return response.SuccessWithData(c, "Account confirmed", login)
}

type resendRequest struct {
	Email string `json:"email_id" validate:"required,email"`
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req resendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	if err := h.service.ResendOTP(req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.Error(c, "Could not resend verification code")
	}
	return response.Success(c, "Verification code sent")
}

type loginRequest struct {
	Email    string `json:"email_id" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	login, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserInactive):
			return response.Unauthorized(c, "Account is inactive")
		case errors.Is(err, service.ErrUserNotConfirmed):
			return response.Unauthorized(c, "Account is not confirmed")
		}
		return response.Unauthorized(c, "Invalid email or password")
	}
	return response.SuccessWithData(c, "Login successful", login)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return response.ValidationError(c, "Validation failed", errs)
	}

	if err := h.service.ChangePassword(currentUserEmail(c), req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return response.BadRequest(c, "Current password is incorrect")
		}
		return response.Error(c, "Password change failed")
	}
	return response.Success(c, "Password updated")
}
