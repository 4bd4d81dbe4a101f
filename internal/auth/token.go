package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/user-auth-service/internal/domain"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and kind mismatches.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned once the exp claim has passed.
	ErrExpiredToken = errors.New("token expired")
	// ErrMissingSecret is returned when a manager is built without a signing key.
	ErrMissingSecret = errors.New("token signing secret is empty")
)

const (
	defaultAccessTTL  = 8 * time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenManager issues and verifies HS256 access and refresh tokens.
// It holds no mutable state after construction.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. Non-positive TTLs fall back to 8h and 7 days.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	tm := &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes the JWT payload shared by both token kinds.
// Refresh tokens only carry the subject id.
type Claims struct {
	SubjectID string           `json:"id"`
	Username  string           `json:"username,omitempty"`
	Role      domain.Role      `json:"role,omitempty"`
	Kind      domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// Identity returns the identity encoded in the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{SubjectID: c.SubjectID, Username: c.Username, Role: c.Role}
}

// TokenID returns the jti claim.
func (c *Claims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Expiry returns the exp claim as a time, zero if absent.
func (c *Claims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// AccessTTL returns the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

// IssueAccessToken signs the identity into a short lived access token.
func (tm *TokenManager) IssueAccessToken(identity domain.Identity) (domain.Token, error) {
	return tm.issue(Claims{
		SubjectID: identity.SubjectID,
		Username:  identity.Username,
		Role:      identity.Role,
		Kind:      domain.TokenKindAccess,
	}, tm.accessTTL)
}

// IssueRefreshToken signs a refresh token that carries only the subject id.
func (tm *TokenManager) IssueRefreshToken(subjectID string) (domain.Token, error) {
	return tm.issue(Claims{
		SubjectID: subjectID,
		Kind:      domain.TokenKindRefresh,
	}, tm.refreshTTL)
}

func (tm *TokenManager) issue(claims Claims, ttl time.Duration) (domain.Token, error) {
	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.SubjectID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.Token{}, fmt.Errorf("sign %s token: %w", claims.Kind, err)
	}
	return domain.Token{
		ID:        claims.RegisteredClaims.ID,
		Kind:      claims.Kind,
		Value:     signed,
		SubjectID: claims.SubjectID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify validates signature, expiry and kind. The returned error wraps either
// ErrExpiredToken or ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string, kind domain.TokenKind) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, kind, claims.Kind)
	}
	if claims.SubjectID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
