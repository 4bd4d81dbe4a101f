package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-auth-service/internal/api/dto"
	"github.com/spec-kit/user-auth-service/internal/auth"
	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/service"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

// UsersHandler exposes user management endpoints. Routes are expected to sit
// behind the strict gate and the role gate.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// ListByRole handles GET /users/role/:role.
func (h *UsersHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.users.ListByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.IdentityFromContext(c)
	if err := h.users.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "user deleted"})
}
