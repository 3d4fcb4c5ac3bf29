// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// errInvalidCredentials never says which half of the pair was wrong.
var errInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

// Service implements staff authentication use cases.
type Service struct {
	staff   StaffRepository
	limiter AttemptLimiter
	tokens  TokenProvider
	logger  *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(staff StaffRepository, limiter AttemptLimiter, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		staff:   staff,
		limiter: limiter,
		tokens:  tokens,
		logger:  logger,
	}
}

/*
Login validates staff credentials and issues an access token.

Returns:
  - *Session: The signed token and the staff profile
  - error: [apperr.Unauthorized] for bad credentials or inactive accounts,
    [apperr.RateLimited] once the email exceeded its failure budget

Flow:
 1. Refuse early when the email is locked out.
 2. Lookup by email and verify the bcrypt hash.
 3. Count the failure, or reset the counter and sign a token.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 1. Throttle ───────────────────────────────────────────────────────
	failures, err := service.limiter.Failures(context, email)
	if err != nil {
		service.logger.Warn("login_limiter_unavailable", slog.Any("error", err))
	}
	if failures >= constants.MaxLoginFailures {
		return nil, apperr.RateLimited(int(constants.LoginFailureWindow.Seconds()))
	}

	// ── 2. Verify ─────────────────────────────────────────────────────────
	staff, err := service.staff.FindByEmail(context, email)
	if err != nil && !apperr.HasCode(err, "NOT_FOUND") {
		return nil, err
	}
	if staff == nil || !staff.IsActive || !sec.CheckPasswordHash(input.Password, staff.PasswordHash) {
		count, failErr := service.limiter.Fail(context, email, constants.LoginFailureWindow)
		if failErr != nil {
			service.logger.Warn("login_limiter_unavailable", slog.Any("error", failErr))
		}
		service.logger.Warn("login_failed", slog.Int("failures", count))
		return nil, errInvalidCredentials
	}

	// ── 3. Issue ──────────────────────────────────────────────────────────
	if err := service.limiter.Reset(context, email); err != nil {
		service.logger.Warn("login_limiter_unavailable", slog.Any("error", err))
	}

	expiresAt := time.Now().Add(constants.AccessTokenTTL)
	token, err := service.tokens.GenerateAccessToken(staff.ID, staff.Email, string(staff.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.Info("staff_logged_in", slog.String("staff_id", staff.ID), slog.String("role", string(staff.Role)))

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Staff:       staff,
	}, nil
}

// Me returns the active staff account behind a token.
func (service *Service) Me(context context.Context, staffID string) (*Staff, error) {
	staff, err := service.staff.FindByID(context, staffID)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, apperr.Unauthorized("Account is disabled")
	}
	return staff, nil
}

// Create enrolls a staff account. Emails are stored lower-cased.
func (service *Service) Create(context context.Context, input CreateInput) (*Staff, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	displayName := strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.MinLen(FieldPassword, input.Password, MinPasswordLength).MaxLen(FieldPassword, input.Password, 72)
	validator.Required(FieldDisplayName, displayName).MaxLen(FieldDisplayName, displayName, 100)
	validator.Custom(FieldRole, !input.Role.IsValid(), "Must be one of: admin, manager, viewer")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	staff := &Staff{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := service.staff.Create(context, staff); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, err
	}

	service.logger.Info("staff_created", slog.String("staff_id", staff.ID), slog.String("role", string(staff.Role)))
	return staff, nil
}
