// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recording

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

// Routes returns a [chi.Router] mounted at /api/v1/recordings.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listRecordings)
		viewer.Get("/{id}", handler.getRecording)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createRecording)
		manager.Patch("/{id}", handler.updateRecording)
		manager.Delete("/{id}", handler.deleteRecording)
	})

	return router
}

func (handler *Handler) listRecordings(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		WorkID: request.URL.Query().Get("work_id"),
		SongID: request.URL.Query().Get("song_id"),
		Query:  request.URL.Query().Get("q"),
	}

	recordings, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recordings, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getRecording(writer http.ResponseWriter, request *http.Request) {
	recordingID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetDetail(request.Context(), recordingID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createRecording(writer http.ResponseWriter, request *http.Request) {
	var input Recording
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

func (handler *Handler) updateRecording(writer http.ResponseWriter, request *http.Request) {
	recordingID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Recording
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), recordingID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteRecording(writer http.ResponseWriter, request *http.Request) {
	recordingID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), recordingID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
