package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-auth-service/internal/config"
	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/events"
	"github.com/spec-kit/user-auth-service/internal/repository"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  8 * time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			BcryptCost:      4,
			DefaultRole:     string(domain.RoleReceptionist),
		},
	}
}

// recorder captures every published event.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) attach(d events.Dispatcher) {
	for _, eventType := range events.AllEventTypes {
		d.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e)
			return nil
		})
	}
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	auth        *AuthService
	users       *UserService
	repo        repository.UserRepository
	revocations repository.TokenRevocationRepository
	redis       *miniredis.Miniredis
	events      *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := repository.NewMemoryUserRepository()
	revocations := repository.NewTokenRevocationRepository(client, "test:")
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	rec.attach(dispatcher)

	cfg := testConfig()
	authSvc, err := NewAuthService(cfg, AuthDependencies{
		UserRepo:       repo,
		RevocationRepo: revocations,
		Dispatcher:     dispatcher,
	})
	require.NoError(t, err)

	return &fixture{
		auth:        authSvc,
		users:       NewUserService(cfg, repo, dispatcher, nil),
		repo:        repo,
		revocations: revocations,
		redis:       srv,
		events:      rec,
	}
}

func (f *fixture) seed(t *testing.T, username, password string, role domain.Role) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func requireCode(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}
