package dto

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest payload for POST /auth/register. There is no role field:
// public registration always receives the configured default role.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// RefreshResponse carries the newly minted access token.
type RefreshResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
