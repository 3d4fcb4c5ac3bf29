// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package csrf

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	"github.com/taibuivan/harmonia/internal/platform/respond"
)

// Handler exposes the token endpoint.
type Handler struct {
	service *Service
	secure  bool
}

// NewHandler constructs a [Handler]. secure marks the cookie Secure (production).
func NewHandler(service *Service, secure bool) *Handler {
	return &Handler{service: service, secure: secure}
}

// Routes returns the CSRF router, mounted at /api/v1/csrf.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.token)
	return router
}

/*
GET /api/v1/csrf/.

Description: Returns the caller's current token, issuing a fresh one when the
cookie is missing or expired. The cookie is readable from JavaScript on purpose.

Response:
  - 200: {"csrf_token": string}
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.CSRFCookieName); err == nil {
		valid, err := handler.service.Valid(request.Context(), cookie.Value)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if valid {
			respond.OK(writer, map[string]string{"csrf_token": cookie.Value})
			return
		}
	}

	token, err := handler.service.Issue(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(handler.service.TTL().Seconds()),
		Secure:   handler.secure,
		SameSite: http.SameSiteLaxMode,
	})

	respond.OK(writer, map[string]string{"csrf_token": token})
}

// Protect rejects unsafe cookie-authenticated requests without a matching token.
func Protect(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(writer, request)
				return
			}

			if middleware.IsBearerRequest(request) {
				next.ServeHTTP(writer, request)
				return
			}

			cookieToken := ""
			if cookie, err := request.Cookie(constants.CSRFCookieName); err == nil {
				cookieToken = cookie.Value
			}

			if err := service.Verify(request.Context(), cookieToken, request.Header.Get(constants.HeaderXCSRFToken)); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
