package dto

// UpdateProfileRequest is the payload for PUT user/{slug}/update/
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// ChangePasswordRequest is the payload for POST change-password/
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// PasswordResetRequest is the payload for POST password-reset/
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest is the payload for POST password-reset-confirm/
type PasswordResetConfirmRequest struct {
	UID      string `json:"uidb64"`
	Token    string `json:"token"`
	Password string `json:"password"`
}
