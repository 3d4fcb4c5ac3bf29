// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package account lets staff manage their own profile and password, and lets
// admins manage who may use the dashboard.
package account

import (
	"context"

	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/users/auth"
)

// ProfileInput is the self-service subset of a staff profile.
type ProfileInput struct {
	DisplayName *string `json:"display_name"`
}

// PasswordInput changes the caller's password.
type PasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AccessInput is what an admin may change on another staff account.
type AccessInput struct {
	Role     *sec.UserRole `json:"role"`
	IsActive *bool         `json:"is_active"`
}

// Repository defines persistence for staff account maintenance.
type Repository interface {
	FindByID(context context.Context, id string) (*auth.Staff, error)
	List(context context.Context) ([]*auth.Staff, error)
	UpdateProfile(context context.Context, staff *auth.Staff) error
	UpdatePassword(context context.Context, id, passwordHash string) error
	UpdateAccess(context context.Context, staff *auth.Staff) error
}

// Global field names for validation
const (
	FieldDisplayName     = "display_name"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldRole            = "role"
)
