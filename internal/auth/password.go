package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a plaintext password does not match its hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. A mismatch is
// reported as ErrPasswordMismatch; a corrupt hash is returned as is.
func ComparePassword(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// CredentialVerifier checks login passwords. For unknown accounts it still
// spends one bcrypt comparison so response timing does not reveal whether a
// username exists.
type CredentialVerifier struct {
	dummyHash []byte
}

// NewCredentialVerifier builds a verifier whose decoy hash uses the given cost.
func NewCredentialVerifier(cost int) (*CredentialVerifier, error) {
	hash, err := HashPassword("decoy-password-never-matches", cost)
	if err != nil {
		return nil, err
	}
	return &CredentialVerifier{dummyHash: []byte(hash)}, nil
}

// Verify reports whether plain matches hashed.
func (v *CredentialVerifier) Verify(hashed, plain string) bool {
	return ComparePassword(hashed, plain) == nil
}

// Burn spends one comparison against the decoy hash.
func (v *CredentialVerifier) Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(plain))
}
