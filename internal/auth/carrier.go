package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names used as transport carriers for the two token kinds.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	refreshTokenHeader = "X-Refresh-Token"
)

// CookiePolicy holds the attributes applied to every credential cookie.
// Cookies are always HttpOnly and SameSite=Strict; Secure follows the environment.
type CookiePolicy struct {
	Domain string
	Path   string
	Secure bool
}

// Set attaches a credential cookie whose Max-Age matches ttl.
func (p CookiePolicy) Set(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     p.path(),
		Domain:   p.Domain,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		Secure:   p.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Clear expires the named cookies using the same attributes they were set with.
func (p CookiePolicy) Clear(c *fiber.Ctx, names ...string) {
	for _, name := range names {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     p.path(),
			Domain:   p.Domain,
			Expires:  time.Unix(0, 0),
			Secure:   p.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}

func (p CookiePolicy) path() string {
	if p.Path == "" {
		return "/"
	}
	return p.Path
}

// AccessTokenFromRequest reads the access token cookie, falling back to a
// bearer Authorization header.
func AccessTokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(AccessTokenCookie)); token != "" {
		return token
	}
	return bearerToken(c.Get(fiber.HeaderAuthorization))
}

// RefreshTokenFromRequest reads the refresh token cookie, falling back to the
// X-Refresh-Token header for non-browser clients.
func RefreshTokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(RefreshTokenCookie)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Get(refreshTokenHeader))
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
