package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/user-auth-service/internal/domain"
)

// memoryUserRepository keeps credential records in process memory. It backs
// local runs without POSTGRES_DSN and the service tests.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

// NewMemoryUserRepository returns an empty in-memory store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User), now: time.Now}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return ErrConflict
	}
	if r.taken(user) {
		return ErrConflict
	}
	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if r.taken(user) {
		return ErrConflict
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	return r.filter(func(domain.User) bool { return true }), nil
}

func (r *memoryUserRepository) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	return r.filter(func(u domain.User) bool { return u.Role == role }), nil
}

func (r *memoryUserRepository) filter(keep func(domain.User) bool) []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		if keep(user) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].Username < users[j].Username
	})
	return users
}

// taken reports whether another record already uses the username or email.
// Callers hold the lock.
func (r *memoryUserRepository) taken(user *domain.User) bool {
	for id, other := range r.users {
		if id == user.ID {
			continue
		}
		if other.Username == user.Username || strings.EqualFold(other.Email, user.Email) {
			return true
		}
	}
	return false
}
