package account

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/domain"
	"github.com/drfsm113/storefront-client/internal/dto"
)

const (
	detailsPath         = "accounts/api/v1/client/current_user_details/"
	userPathFmt         = "accounts/api/v1/client/user/%s/%s/"
	changePasswordPath  = "accounts/api/v1/client/change-password/"
	passwordResetPath   = "accounts/api/password-reset/"
	passwordConfirmPath = "accounts/api/password-reset-confirm/"
)

// apiClient is the slice of the authenticated transport this service uses
type apiClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Service covers the signed-in user's profile operations
type Service struct {
	api apiClient
	log *zap.Logger
}

// NewService creates an account service over the authenticated transport
func NewService(api apiClient, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, log: log}
}

// UserDetails fetches the current user's profile
func (s *Service) UserDetails(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := s.api.Get(ctx, detailsPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates the user identified by slug
func (s *Service) UpdateProfile(ctx context.Context, slug string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	var out domain.User
	if err := s.api.Put(ctx, fmt.Sprintf(userPathFmt, slug, "update"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the current user's password
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := dto.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return s.api.Post(ctx, changePasswordPath, req, nil)
}

// RequestPasswordReset asks the server to mail a reset link
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	return s.api.Post(ctx, passwordResetPath, dto.PasswordResetRequest{Email: email}, nil)
}

// ConfirmPasswordReset completes a reset with the mailed uid/token pair
func (s *Service) ConfirmPasswordReset(ctx context.Context, uid, token, password string) error {
	req := dto.PasswordResetConfirmRequest{UID: uid, Token: token, Password: password}
	return s.api.Post(ctx, passwordConfirmPath, req, nil)
}

// Deactivate soft-disables the account
func (s *Service) Deactivate(ctx context.Context, slug string) error {
	inactive := false
	_, err := s.UpdateProfile(ctx, slug, &dto.UpdateProfileRequest{IsActive: &inactive})
	return err
}

// Delete permanently removes the account
func (s *Service) Delete(ctx context.Context, slug string) error {
	return s.api.Delete(ctx, fmt.Sprintf(userPathFmt, slug, "delete"), nil)
}
