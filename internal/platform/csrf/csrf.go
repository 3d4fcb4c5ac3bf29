// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package csrf implements double-submit CSRF protection for cookie-authenticated
dashboard sessions.

Flow:

  - GET /api/v1/csrf/ issues a random token, records it in Redis with a TTL and
    sets it in the readable `csrftoken` cookie.
  - Every unsafe request (POST, PUT, PATCH, DELETE) must echo the cookie value
    in the X-CSRFToken header. The pair must match and the token must still be
    known to the store.
  - Requests authenticated with a bearer token are exempt because browsers
    never attach them implicitly.
*/
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/constants"
)

// ErrTokenMismatch is returned when the cookie and header tokens disagree or are unknown.
var ErrTokenMismatch = &apperr.AppError{
	Code:       "CSRF_FAILED",
	Message:    "CSRF token missing or incorrect",
	HTTPStatus: http.StatusForbidden,
}

// Store persists issued tokens for their lifetime.
type Store interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
}

// Service issues and verifies CSRF tokens.
type Service struct {
	store Store
	ttl   time.Duration
}

// NewService constructs a [Service]. A non-positive ttl falls back to the default.
func NewService(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = constants.DefaultCSRFTokenTTL
	}
	return &Service{store: store, ttl: ttl}
}

// TTL returns the lifetime of issued tokens.
func (service *Service) TTL() time.Duration {
	return service.ttl
}

// Issue generates and records a new token.
func (service *Service) Issue(ctx context.Context) (string, error) {
	buffer := make([]byte, constants.CSRFTokenBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("csrf: failed to generate token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buffer)
	if err := service.store.Save(ctx, token, service.ttl); err != nil {
		return "", apperr.Internal(err)
	}

	return token, nil
}

// Valid reports whether token is still known to the store.
func (service *Service) Valid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return service.store.Exists(ctx, token)
}

// Verify checks a cookie/header pair.
func (service *Service) Verify(ctx context.Context, cookieToken, headerToken string) error {
	if cookieToken == "" || headerToken == "" {
		return ErrTokenMismatch
	}

	if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
		return ErrTokenMismatch
	}

	known, err := service.store.Exists(ctx, cookieToken)
	if err != nil {
		return apperr.Internal(err)
	}
	if !known {
		return ErrTokenMismatch
	}

	return nil
}
