// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

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

// Routes returns a [chi.Router] mounted at /api/v1/works.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listWorks)
		viewer.Get("/{id}", handler.getWork)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createWork)
		manager.Patch("/{id}", handler.updateWork)
		manager.Delete("/{id}", handler.deleteWork)
	})

	return router
}

// viewMeta reads ?view= and reports whether the caller may edit.
func viewMeta(request *http.Request) ViewMeta {
	claims := requestutil.Claims(request)
	return ViewMeta{
		View:    ParseViewMode(request.URL.Query().Get("view")),
		CanEdit: claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleManager),
	}
}

func (handler *Handler) listWorks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		SongID: request.URL.Query().Get("song_id"),
		Query:  request.URL.Query().Get("q"),
	}

	works, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, works, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetDetail(request.Context(), workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKWithMeta(writer, detail, viewMeta(request))
}

func (handler *Handler) createWork(writer http.ResponseWriter, request *http.Request) {
	var input Work
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

func (handler *Handler) updateWork(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Work
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), workID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteWork(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), workID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
