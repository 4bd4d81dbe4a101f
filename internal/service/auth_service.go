package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-auth-service/internal/auth"
	"github.com/spec-kit/user-auth-service/internal/config"
	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/events"
	"github.com/spec-kit/user-auth-service/internal/repository"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

// Session is the outcome of a successful login or refresh. Refresh leaves
// RefreshToken empty.
type Session struct {
	User         *domain.User
	AccessToken  domain.Token
	RefreshToken domain.Token
}

// RegisterInput carries the fields for a new account. An empty Role falls
// back to the configured default.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService coordinates the session boundary: registration, login,
// refresh and logout.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.TokenRevocationRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	tokenMgr    *auth.TokenManager
	verifier    *auth.CredentialVerifier
	bcryptCost  int
	defaultRole domain.Role
}

// AuthDependencies encapsulates collaborators for the auth service.
// RevocationRepo and Dispatcher are optional.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.TokenRevocationRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	TokenOptions   []auth.TokenOption
}

// NewAuthService builds the service. It fails when the signing secret is
// missing or the default role is not a known role.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, deps.TokenOptions...)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewCredentialVerifier(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	defaultRole := domain.Role(cfg.Auth.DefaultRole)
	if !defaultRole.Valid() {
		return nil, errors.New("AUTH_DEFAULT_ROLE is not a known role")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.RevocationRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		tokenMgr:    tokenMgr,
		verifier:    verifier,
		bcryptCost:  cfg.Auth.BcryptCost,
		defaultRole: defaultRole,
	}, nil
}

// Register creates a new active account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = s.defaultRole
	}

	problems := fieldErrors{}
	problems.checkUsername(in.Username)
	problems.checkEmail(in.Email)
	problems.checkPassword(in.Password)
	problems.checkRole(in.Role)
	if err := problems.err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("username or email already taken", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventUserRegistered, user.ID, user.Username,
		events.UserRegisteredPayload{Role: user.Role}))
	return user, nil
}

// Login authenticates a username and password and issues both tokens.
// Unknown user, inactive account and wrong password all yield the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		details := map[string]any{}
		if username == "" {
			details["username"] = "required"
		}
		if password == "" {
			details["password"] = "required"
		}
		return nil, apperrors.NewValidationError("username and password are required", details)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInternalError(err)
		}
		s.verifier.Burn(password)
		s.loginFailed(ctx, username, "unknown user")
		return nil, apperrors.NewInvalidCredentials()
	}

	if !s.verifier.Verify(user.PasswordHash, password) {
		s.loginFailed(ctx, username, "password mismatch")
		return nil, apperrors.NewInvalidCredentials()
	}
	if !user.IsActive {
		s.loginFailed(ctx, username, "inactive account")
		return nil, apperrors.NewInvalidCredentials()
	}

	access, err := s.tokenMgr.IssueAccessToken(user.Identity())
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refresh, err := s.tokenMgr.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventLoginSucceeded, user.ID, user.Username, nil))
	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token from a valid refresh token. Username and
// role come from the current credential record, not from the old token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.NewUnauthorized("refresh token required")
	}

	claims, err := s.tokenMgr.Verify(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		s.logger.Debug("refresh token rejected", zap.Error(err))
		return nil, apperrors.NewForbidden("invalid or expired refresh token")
	}

	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID())
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if revoked {
			return nil, apperrors.NewForbidden("invalid or expired refresh token")
		}
	}

	user, err := s.users.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewForbidden("invalid or expired refresh token")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewForbidden("invalid or expired refresh token")
	}

	access, err := s.tokenMgr.IssueAccessToken(user.Identity())
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventTokenRefreshed, user.ID, user.Username, nil))
	return &Session{User: user, AccessToken: access}, nil
}

// Logout pushes the ids of any still-valid presented tokens onto the
// deny-list and reports how many were revoked. Cookie clearing is the
// caller's job; a deny-list failure is logged and does not fail the logout.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) int {
	var subject domain.Identity
	candidates := make([]*auth.Claims, 0, 2)
	if claims, err := s.tokenMgr.Verify(accessToken, domain.TokenKindAccess); err == nil {
		candidates = append(candidates, claims)
		subject = claims.Identity()
	}
	if claims, err := s.tokenMgr.Verify(refreshToken, domain.TokenKindRefresh); err == nil {
		candidates = append(candidates, claims)
		if subject.SubjectID == "" {
			subject = claims.Identity()
		}
	}

	revoked := 0
	if s.revocations != nil {
		for _, claims := range candidates {
			if err := s.revocations.Revoke(ctx, claims.TokenID(), claims.Expiry()); err != nil {
				s.logger.Warn("failed to revoke token", zap.String("kind", string(claims.Kind)), zap.Error(err))
				continue
			}
			revoked++
		}
	}

	s.publish(ctx, events.New(events.EventLogout, subject.SubjectID, subject.Username,
		events.LogoutPayload{RevokedTokens: revoked}))
	return revoked
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) loginFailed(ctx context.Context, username, reason string) {
	s.publish(ctx, events.New(events.EventLoginFailed, "", username, events.LoginFailedPayload{Reason: reason}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
