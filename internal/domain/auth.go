package domain

import "time"

// TokenKind differentiates access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Identity is the trusted claim set decoded from a verified token. It is never persisted.
type Identity struct {
	SubjectID string
	Username  string
	Role      Role
}

// Token describes an issued, signed credential.
type Token struct {
	ID        string
	Kind      TokenKind
	Value     string
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TTL returns the lifetime the token was issued with.
func (t Token) TTL() time.Duration {
	return t.ExpiresAt.Sub(t.IssuedAt)
}
