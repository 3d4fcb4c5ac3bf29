// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth authenticates dashboard staff.

Staff log in with email and password and receive a signed access token, both
in the response body (for API clients) and in an HttpOnly session cookie (for
the browser). Repeated wrong passwords for one email are throttled through
Redis.
*/
package auth

import (
	"time"

	"github.com/taibuivan/harmonia/internal/platform/sec"
)

// # Domain Entities

// Staff is a dashboard account.
type Staff struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Staff       *Staff    `json:"staff"`
}

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateInput enrolls a new staff account.
type CreateInput struct {
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	DisplayName string       `json:"display_name"`
	Role        sec.UserRole `json:"role"`
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldRole        = "role"
)

// MinPasswordLength is enforced when enrolling staff.
const MinPasswordLength = 10
