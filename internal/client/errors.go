// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
)

// APIError is a non-2xx response decoded from the standard error envelope.
type APIError struct {
	Status       int
	Code         string
	Detail       string
	Fields       []apperr.FieldError
	NeedsReentry bool
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("harmonia: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("harmonia: %d %s", e.Status, e.Detail)
}

// NotFound reports whether err is a 404 from the API.
func NotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// Conflict reports whether err is a 409 from the API.
func Conflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// errorEnvelope mirrors the server error body. Older endpoints only send "error".
type errorEnvelope struct {
	Error        string              `json:"error"`
	Detail       string              `json:"detail"`
	Code         string              `json:"code"`
	Details      []apperr.FieldError `json:"details"`
	NeedsReentry bool                `json:"needs_reentry"`
}

// decodeError builds an [APIError] from a failed response body.
func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Code = envelope.Code
	apiErr.Detail = envelope.Detail
	if apiErr.Detail == "" {
		apiErr.Detail = envelope.Error
	}
	apiErr.Fields = envelope.Details
	apiErr.NeedsReentry = envelope.NeedsReentry
	return apiErr
}
