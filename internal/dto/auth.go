package dto

import "github.com/drfsm113/storefront-client/internal/domain"

// LoginRequest is the payload for POST accounts/api/user-login/
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the remote API's login reply
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *domain.User `json:"user_detail"`
	Role    string       `json:"role"`
}

// RegisterRequest is the payload for POST accounts/api/register/
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// RegisterResponse is the remote API's registration reply
type RegisterResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user_detail,omitempty"`
}

// RefreshRequest is the payload for POST accounts/api/token/refresh/
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the replacement access token
type RefreshResponse struct {
	Access string `json:"access"`
}

// LogoutRequest is the payload for POST accounts/api/user-logout/
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
