// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	requestutil "github.com/taibuivan/harmonia/internal/platform/request"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/credits.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireRole(sec.RoleViewer)).Get("/roles", handler.listRoles)
	router.With(middleware.RequireRole(sec.RoleViewer)).Get("/{subjectType}/{subjectID}", handler.listCredits)

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/{subjectType}/{subjectID}", handler.createCredit)
		manager.Patch("/{id}", handler.updateCredit)
		manager.Delete("/{id}", handler.deleteCredit)
	})

	return router
}

func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Roles)
}

func (handler *Handler) listCredits(writer http.ResponseWriter, request *http.Request) {
	credits, err := handler.service.List(request.Context(),
		SubjectType(chi.URLParam(request, "subjectType")), chi.URLParam(request, "subjectID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, credits)
}

func (handler *Handler) createCredit(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credit, err := handler.service.Create(request.Context(),
		SubjectType(chi.URLParam(request, "subjectType")), chi.URLParam(request, "subjectID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, credit)
}

func (handler *Handler) updateCredit(writer http.ResponseWriter, request *http.Request) {
	creditID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credit, err := handler.service.Update(request.Context(), creditID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, credit)
}

func (handler *Handler) deleteCredit(writer http.ResponseWriter, request *http.Request) {
	creditID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), creditID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
