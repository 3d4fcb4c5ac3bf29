// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations carry a SQLSTATE the client can act on
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &apperr.AppError{
				Code:       "CONFLICT",
				Message:    "A record with the same key already exists",
				HTTPStatus: http.StatusConflict,
				Cause:      fmt.Errorf("%s: %w", action, err),
			}
		case pgerrcode.ForeignKeyViolation:
			return &apperr.AppError{
				Code:       "UNPROCESSABLE",
				Message:    "A referenced record does not exist",
				HTTPStatus: http.StatusUnprocessableEntity,
				Cause:      fmt.Errorf("%s: %w", action, err),
			}
		case pgerrcode.CheckViolation:
			return &apperr.AppError{
				Code:       "UNPROCESSABLE",
				Message:    "The value violates a data constraint",
				HTTPStatus: http.StatusUnprocessableEntity,
				Cause:      fmt.Errorf("%s: %w", action, err),
			}
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// NotFound returns a resource-specific 404 when err is [pgx.ErrNoRows],
// and otherwise behaves like [Wrap].
func NotFound(err error, resource, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}
