package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-auth-service/internal/domain"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

// RoleGate is a flat allow-list of roles. Matching is exact; there is no role
// hierarchy, and an empty list allows nobody.
type RoleGate struct {
	allowed map[domain.Role]struct{}
}

// NewRoleGate builds a gate for the given roles.
func NewRoleGate(allowed ...domain.Role) *RoleGate {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}
	return &RoleGate{allowed: set}
}

// RolesFromStrings converts configured role names.
func RolesFromStrings(names []string) []domain.Role {
	roles := make([]domain.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, domain.Role(name))
	}
	return roles
}

// Allows reports whether the identity holds an allow-listed role.
// A nil identity or an empty role is always denied.
func (g *RoleGate) Allows(identity *domain.Identity) bool {
	if g == nil || identity == nil || identity.Role == "" {
		return false
	}
	_, ok := g.allowed[identity.Role]
	return ok
}

// Require rejects requests whose identity is not allowed with Forbidden.
// It expects Strict (or Soft) to have run earlier in the chain.
func (g *RoleGate) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if !g.Allows(identity) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
