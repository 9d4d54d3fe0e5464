package middleware

import (
	"strings"

	"go-market-api/internal/model"
	"go-market-api/internal/repository"
	"go-market-api/pkg/jwt"
	"go-market-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and loads the account, rejecting
// tokens for accounts that were deactivated or never confirmed since issue.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return response.Unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "User not found")
		}
		if !user.IsActive {
			return response.Unauthorized(c, "Account is inactive")
		}
		if !user.IsConfirmed {
			return response.Unauthorized(c, "Account is not confirmed")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role != model.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
