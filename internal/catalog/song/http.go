// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

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

// Routes returns a [chi.Router] mounted at /api/v1/songs.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listSongs)
		viewer.Get("/{id}", handler.getSong)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createSong)
		manager.Patch("/{id}", handler.updateSong)

		// Removing a song is restricted to admins
		manager.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteSong)
	})

	return router
}

func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Status:   Status(request.URL.Query().Get("status")),
		ArtistID: request.URL.Query().Get("artist_id"),
		Query:    request.URL.Query().Get("q"),
	}

	songs, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, songs, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getSong(writer http.ResponseWriter, request *http.Request) {
	song, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, song)
}

func (handler *Handler) createSong(writer http.ResponseWriter, request *http.Request) {
	var input Song
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

func (handler *Handler) updateSong(writer http.ResponseWriter, request *http.Request) {
	songID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Song
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), songID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteSong(writer http.ResponseWriter, request *http.Request) {
	songID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), songID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
