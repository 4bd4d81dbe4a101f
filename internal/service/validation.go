package service

import (
	"net/mail"
	"strings"

	"github.com/spec-kit/user-auth-service/internal/domain"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
	// bcrypt refuses longer input.
	maxPasswordBytes = 72
)

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]any

func (f fieldErrors) checkUsername(username string) {
	if len(strings.TrimSpace(username)) < minUsernameLength {
		f["username"] = "must be at least 3 characters"
	}
}

func (f fieldErrors) checkEmail(email string) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		f["email"] = "must be a valid email address"
	}
}

func (f fieldErrors) checkPassword(password string) {
	switch {
	case len(password) < minPasswordLength:
		f["password"] = "must be at least 6 characters"
	case len(password) > maxPasswordBytes:
		f["password"] = "must be at most 72 bytes"
	}
}

func (f fieldErrors) checkRole(role domain.Role) {
	if !role.Valid() {
		f["role"] = "unknown role"
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("validation failed", map[string]any(f))
}
