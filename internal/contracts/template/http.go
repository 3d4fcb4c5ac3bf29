// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	requestutil "github.com/taibuivan/harmonia/internal/platform/request"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/templates.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listTemplates)
		viewer.Get("/{id}", handler.getTemplate)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createTemplate)
		manager.Patch("/{id}", handler.updateTemplate)
		manager.Post("/{id}/generate", handler.generate)
		manager.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteTemplate)
	})

	return router
}

func (handler *Handler) listTemplates(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{Kind: Kind(request.URL.Query().Get("kind"))}

	templates, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, templates, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTemplate(writer http.ResponseWriter, request *http.Request) {
	templateID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.Get(request.Context(), templateID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, template)
}

func (handler *Handler) createTemplate(writer http.ResponseWriter, request *http.Request) {
	var input Template
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateTemplate(writer http.ResponseWriter, request *http.Request) {
	templateID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Template
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), templateID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteTemplate(writer http.ResponseWriter, request *http.Request) {
	templateID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), templateID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	templateID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GenerateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	generated, err := handler.service.Generate(request.Context(), templateID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, generated)
}
