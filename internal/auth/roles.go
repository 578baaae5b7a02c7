package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sales-report-service/internal/domain"
	apperrors "github.com/spec-kit/sales-report-service/pkg/util"
)

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if id.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller presented a valid identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
