package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationRepository is a deny-list of token ids that must be refused
// before their natural expiry.
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRevocationRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewTokenRevocationRepository stores revoked ids as expiring Redis keys.
func NewTokenRevocationRepository(client *redis.Client, prefix string) TokenRevocationRepository {
	return &tokenRevocationRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *tokenRevocationRepository) key(tokenID string) string {
	return r.prefix + "revoked:" + tokenID
}

// Revoke keeps the entry only as long as the token could still verify.
func (r *tokenRevocationRepository) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(tokenID), until.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *tokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}
