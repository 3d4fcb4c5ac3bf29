// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

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

// Routes returns a [chi.Router] mounted at /api/v1/entities.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listEntities)
		viewer.Get("/{id}", handler.getEntity)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createEntity)
		manager.Patch("/{id}", handler.updateEntity)
		manager.Put("/{id}/sensitive", handler.setSensitive)
		manager.Post("/{id}/sensitive/{field}/reveal", handler.reveal)

		manager.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteEntity)
	})

	return router
}

func (handler *Handler) listEntities(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Kind:  Kind(request.URL.Query().Get("kind")),
		Query: request.URL.Query().Get("q"),
	}

	entities, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entities, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getEntity(writer http.ResponseWriter, request *http.Request) {
	entityID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Get(request.Context(), entityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *Handler) createEntity(writer http.ResponseWriter, request *http.Request) {
	var input Entity
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

func (handler *Handler) updateEntity(writer http.ResponseWriter, request *http.Request) {
	entityID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Entity
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), entityID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteEntity(writer http.ResponseWriter, request *http.Request) {
	entityID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), entityID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) setSensitive(writer http.ResponseWriter, request *http.Request) {
	entityID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SensitiveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetSensitive(request.Context(), entityID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// reveal returns the plaintext of one sealed field.
// A failed decryption answers 422 with needs_reentry set.
func (handler *Handler) reveal(writer http.ResponseWriter, request *http.Request) {
	entityID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	revealed, err := handler.service.Reveal(request.Context(), entityID, SensitiveField(requestutil.Param(request, "field")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, revealed)
}
