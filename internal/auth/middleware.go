package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/observability"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

var (
	// ErrNoCredential means no token carrier was present on the request.
	ErrNoCredential = errors.New("no credential presented")
	// ErrTokenRevoked means the token id is on the deny-list.
	ErrTokenRevoked = errors.New("token revoked")
)

// RevocationChecker reports whether a token id has been revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticator turns access token carriers into request identities.
type Authenticator struct {
	tokens      *TokenManager
	revocations RevocationChecker
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// AuthenticatorOption customizes an Authenticator.
type AuthenticatorOption func(*Authenticator)

// WithRevocations makes the strict gate consult the deny-list.
func WithRevocations(checker RevocationChecker) AuthenticatorOption {
	return func(a *Authenticator) { a.revocations = checker }
}

// WithMetrics records gate outcomes.
func WithMetrics(metrics *observability.Metrics) AuthenticatorOption {
	return func(a *Authenticator) { a.metrics = metrics }
}

// NewAuthenticator constructs middleware.
func NewAuthenticator(tokens *TokenManager, logger *zap.Logger, opts ...AuthenticatorOption) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Authenticator{tokens: tokens, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// resolve verifies the access token carrier without touching I/O.
func (a *Authenticator) resolve(c *fiber.Ctx) (*Claims, error) {
	raw := AccessTokenFromRequest(c)
	if raw == "" {
		return nil, ErrNoCredential
	}
	return a.tokens.Verify(raw, domain.TokenKindAccess)
}

// Soft attaches an identity when a valid access token is present and never
// rejects the request.
func (a *Authenticator) Soft() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.resolve(c)
		if err != nil {
			if !errors.Is(err, ErrNoCredential) {
				a.logger.Debug("ignoring unverifiable token", zap.String("path", c.Path()), zap.Error(err))
			}
			a.metrics.RecordAuthDecision("soft", outcome(err))
			return c.Next()
		}
		a.metrics.RecordAuthDecision("soft", outcome(nil))
		setIdentity(c, claims.Identity())
		return c.Next()
	}
}

// Strict requires a valid, unrevoked access token: a missing carrier yields
// Unauthorized, anything else that fails yields Forbidden.
func (a *Authenticator) Strict() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.resolve(c)
		if err == nil && a.revocations != nil {
			revoked, checkErr := a.revocations.IsRevoked(c.UserContext(), claims.TokenID())
			if checkErr != nil {
				a.metrics.RecordAuthDecision("strict", "error")
				return apperrors.NewInternalError(checkErr)
			}
			if revoked {
				err = ErrTokenRevoked
			}
		}
		a.metrics.RecordAuthDecision("strict", outcome(err))

		switch {
		case err == nil:
		case errors.Is(err, ErrNoCredential):
			return apperrors.NewUnauthorized("access token required")
		default:
			a.logger.Info("rejected access token", zap.String("path", c.Path()), zap.String("reason", outcome(err)), zap.Error(err))
			return apperrors.NewForbidden("invalid or expired token")
		}

		setIdentity(c, claims.Identity())
		return c.Next()
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoCredential):
		return "missing"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrTokenRevoked):
		return "revoked"
	default:
		return "invalid"
	}
}

func setIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(identityKey, &identity)
}

// IdentityFromContext retrieves the identity attached by Soft or Strict.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
