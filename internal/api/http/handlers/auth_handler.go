package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-auth-service/internal/api/dto"
	"github.com/spec-kit/user-auth-service/internal/auth"
	"github.com/spec-kit/user-auth-service/internal/service"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

// AuthHandler exposes the session endpoints: register, login, refresh and logout.
type AuthHandler struct {
	auth    *service.AuthService
	cookies auth.CookiePolicy
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies auth.CookiePolicy) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Success: true,
		User:    dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login and sets both token cookies.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	session, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, auth.AccessTokenCookie, session.AccessToken.Value, session.AccessToken.TTL())
	h.cookies.Set(c, auth.RefreshTokenCookie, session.RefreshToken.Value, session.RefreshToken.TTL())

	return c.JSON(dto.LoginResponse{
		Success: true,
		User:    dto.NewUserResponse(session.User),
		Token:   session.AccessToken.Value,
	})
}

// Refresh handles POST /auth/refresh-token and replaces the access cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	session, err := h.auth.Refresh(c.UserContext(), auth.RefreshTokenFromRequest(c))
	if err != nil {
		return err
	}

	h.cookies.Set(c, auth.AccessTokenCookie, session.AccessToken.Value, session.AccessToken.TTL())

	return c.JSON(dto.RefreshResponse{
		Success: true,
		Token:   session.AccessToken.Value,
	})
}

// Logout handles POST /auth/logout. It always succeeds and clears both cookies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext(), auth.AccessTokenFromRequest(c), auth.RefreshTokenFromRequest(c))
	h.cookies.Clear(c, auth.AccessTokenCookie, auth.RefreshTokenCookie)
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}
