package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/user-auth-service/internal/auth"
	"github.com/spec-kit/user-auth-service/internal/config"
	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/events"
	"github.com/spec-kit/user-auth-service/internal/repository"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

// UpdateUserInput replaces the editable fields of an account. An empty
// Password keeps the current hash; a nil IsActive keeps the current flag.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
	IsActive *bool
}

// UserService is a thin pass-through over the credential store for the
// admin-gated user endpoints.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// ListByRole returns the accounts holding role.
func (s *UserService) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	r := domain.Role(strings.TrimSpace(role))
	if !r.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	users, err := s.users.ListByRole(ctx, r)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err, id)
	}
	return user, nil
}

// Update replaces the account's editable fields.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	problems := fieldErrors{}
	problems.checkUsername(in.Username)
	problems.checkEmail(in.Email)
	problems.checkRole(in.Role)
	if in.Password != "" {
		problems.checkPassword(in.Password)
	}
	if err := problems.err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err, id)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Role = in.Role
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserError(err, id)
	}
	return user, nil
}

// Delete removes an account. actor is recorded on the audit event.
func (s *UserService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return mapUserError(err, id)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return mapUserError(err, id)
	}

	deletedBy := ""
	if actor != nil {
		deletedBy = actor.SubjectID
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventUserDeleted, user.ID, user.Username,
		events.UserDeletedPayload{DeletedBy: deletedBy}))
	return nil
}

func mapUserError(err error, id string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	case errors.Is(err, repository.ErrConflict):
		return apperrors.NewConflict("username or email already taken", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
