package domain

import "time"

// User is the credential record for an account that can sign in.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the claim set minted into access tokens for this user.
func (u *User) Identity() Identity {
	return Identity{SubjectID: u.ID, Username: u.Username, Role: u.Role}
}
