// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/internal/users/auth"
)

// # Service Layer

// Service implements staff self-service and admin access management.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Self Service

// Profile returns the caller's own account.
func (service *Service) Profile(context context.Context, staffID string) (*auth.Staff, error) {
	return service.repo.FindByID(context, staffID)
}

// UpdateProfile applies the provided fields to the caller's account.
func (service *Service) UpdateProfile(context context.Context, staffID string, input ProfileInput) (*auth.Staff, error) {
	staff, err := service.repo.FindByID(context, staffID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		displayName := strings.TrimSpace(*input.DisplayName)
		validator := &validate.Validator{}
		validator.Required(FieldDisplayName, displayName).MaxLen(FieldDisplayName, displayName, 100)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		staff.DisplayName = displayName
	}

	if err := service.repo.UpdateProfile(context, staff); err != nil {
		return nil, err
	}

	service.logger.Info("staff_profile_updated", slog.String("staff_id", staffID))
	return staff, nil
}

/*
ChangePassword replaces the caller's password after checking the current one.

Returns:
  - error: VALIDATION_ERROR on current_password when it does not match, or on
    new_password when it is too short or unchanged
*/
func (service *Service) ChangePassword(context context.Context, staffID string, input PasswordInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	validator.MinLen(FieldNewPassword, input.NewPassword, auth.MinPasswordLength).MaxLen(FieldNewPassword, input.NewPassword, 72)
	validator.Custom(FieldNewPassword, input.NewPassword != "" && input.NewPassword == input.CurrentPassword, "Must differ from the current password")
	if err := validator.Err(); err != nil {
		return err
	}

	staff, err := service.repo.FindByID(context, staffID)
	if err != nil {
		return err
	}
	if !sec.CheckPasswordHash(input.CurrentPassword, staff.PasswordHash) {
		service.logger.Warn("staff_password_change_rejected", slog.String("staff_id", staffID))
		return validate.RequiredError(FieldCurrentPassword, "Incorrect password")
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}
	if err := service.repo.UpdatePassword(context, staffID, hash); err != nil {
		return err
	}

	service.logger.Info("staff_password_changed", slog.String("staff_id", staffID))
	return nil
}

// # Administration

// List returns every staff account.
func (service *Service) List(context context.Context) ([]*auth.Staff, error) {
	return service.repo.List(context)
}

/*
UpdateAccess changes the role or active flag of another staff account.

Description: Admins cannot change their own access, so the last admin can
never lock everyone out by accident.
*/
func (service *Service) UpdateAccess(context context.Context, actorID, staffID string, input AccessInput) (*auth.Staff, error) {
	if actorID == staffID {
		return nil, apperr.Forbidden("You cannot change your own access")
	}

	validator := &validate.Validator{}
	validator.Custom(FieldRole, input.Role != nil && !input.Role.IsValid(), "Must be one of: admin, manager, viewer")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	staff, err := service.repo.FindByID(context, staffID)
	if err != nil {
		return nil, err
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := service.repo.UpdateAccess(context, staff); err != nil {
		return nil, err
	}

	service.logger.Warn("staff_access_changed",
		slog.String("staff_id", staffID),
		slog.String("actor_id", actorID),
		slog.String("role", string(staff.Role)),
		slog.Bool("is_active", staff.IsActive),
	)
	return staff, nil
}
