package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-auth-service/internal/auth"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

// HomeHandler serves the views that only rely on soft identity extraction.
type HomeHandler struct{}

// NewHomeHandler constructs handler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index handles GET / for anonymous and signed-in callers alike.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"username":      identity.Username,
	})
}

// Protected handles GET /protected. Without an extracted identity it answers
// Forbidden. It relies on soft extraction only, so the revocation deny-list is
// not consulted: a token revoked at logout is accepted here until it expires.
// Routes that must honor logout sit behind the strict gate.
func (h *HomeHandler) Protected(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewForbidden("access not authorized")
	}
	return c.JSON(fiber.Map{
		"id":       identity.SubjectID,
		"username": identity.Username,
		"role":     identity.Role,
	})
}
