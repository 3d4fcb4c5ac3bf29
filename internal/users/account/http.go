// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	requestutil "github.com/taibuivan/harmonia/internal/platform/request"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/internal/platform/sec"
)

// Handler implements the account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/account.
//
// # Endpoints
//   - GET   /            : The caller's profile.
//   - PATCH /            : Update the caller's display name.
//   - PUT   /password    : Change the caller's password.
//   - GET   /staff       : List every staff account (admin).
//   - PATCH /staff/{id}  : Change another account's role or active flag (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(self chi.Router) {
		self.Use(middleware.RequireAuth)
		self.Get("/", handler.getProfile)
		self.Patch("/", handler.updateProfile)
		self.Put("/password", handler.changePassword)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/staff", handler.listStaff)
		admin.Patch("/staff/{id}", handler.updateAccess)
	})

	return router
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	staffID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	staff, err := handler.service.Profile(request.Context(), staffID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, staff)
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	staffID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	staff, err := handler.service.UpdateProfile(request.Context(), staffID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, staff)
}

/*
PUT /api/v1/account/password.

Request:
  - body: {"current_password": string, "new_password": string}

Response:
  - 204: Password changed
  - 400: Wrong current password or weak new password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	staffID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), staffID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listStaff(writer http.ResponseWriter, request *http.Request) {
	staff, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, staff)
}

func (handler *Handler) updateAccess(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	staffID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AccessInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	staff, err := handler.service.UpdateAccess(request.Context(), actorID, staffID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, staff)
}
