// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/ctxutil"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	"github.com/taibuivan/harmonia/internal/platform/sec"
)

type fakeVerifier struct {
	claims *sec.AuthClaims
}

func (f fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return f.claims, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_InjectsClaims verifies that a valid bearer token lands in the context.
*/
func TestAuthenticate_InjectsClaims(t *testing.T) {
	verifier := fakeVerifier{claims: &sec.AuthClaims{UserID: "staff-1", Role: string(sec.RoleManager)}}

	var seen *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	if assert.NotNil(t, seen) {
		assert.Equal(t, "staff-1", seen.UserID)
	}
}

/*
TestAuthenticate_RejectsInvalid covers malformed headers and failed verification.
*/
func TestAuthenticate_RejectsInvalid(t *testing.T) {
	handler := middleware.Authenticate(fakeVerifier{})(okHandler())

	for _, header := range []string{"Bearer bad", "Basic abc", "Bearer"} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", header)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, header)
	}
}

/*
TestAuthenticate_SessionCookie checks the cookie fallback used by browser sessions.
*/
func TestAuthenticate_SessionCookie(t *testing.T) {
	verifier := fakeVerifier{claims: &sec.AuthClaims{UserID: "staff-2", Role: string(sec.RoleViewer)}}

	var seen *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "good"})
	handler.ServeHTTP(httptest.NewRecorder(), request)

	if assert.NotNil(t, seen) {
		assert.Equal(t, "staff-2", seen.UserID)
	}

	seen = nil
	stale := httptest.NewRequest(http.MethodGet, "/", nil)
	stale.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "expired"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, stale)

	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole enforces the admin > manager > viewer hierarchy.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"viewer", &sec.AuthClaims{Role: string(sec.RoleViewer)}, http.StatusForbidden},
		{"manager", &sec.AuthClaims{Role: string(sec.RoleManager)}, http.StatusOK},
		{"admin", &sec.AuthClaims{Role: string(sec.RoleAdmin)}, http.StatusOK},
	}

	handler := middleware.RequireRole(sec.RoleManager)(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
