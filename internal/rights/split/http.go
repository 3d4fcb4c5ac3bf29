// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package split

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	requestutil "github.com/taibuivan/harmonia/internal/platform/request"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/internal/platform/sec"
)

// Handler implements the split HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new split [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/splits.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/{subjectType}/{subjectID}/{rightType}", handler.listBucket)
		viewer.Get("/{subjectType}/{subjectID}/{rightType}/summary", handler.summary)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/{subjectType}/{subjectID}/{rightType}", handler.createShare)
		manager.Put("/{subjectType}/{subjectID}/{rightType}", handler.replaceBucket)
		manager.Patch("/{id}", handler.updateShare)
		manager.Delete("/{id}", handler.deleteShare)
	})

	return router
}

// replaceRequest is the body of a whole-bucket replacement.
type replaceRequest struct {
	Shares []ShareInput `json:"shares"`
}

func bucketFromRequest(request *http.Request) Bucket {
	return Bucket{
		SubjectType: SubjectType(chi.URLParam(request, "subjectType")),
		SubjectID:   chi.URLParam(request, "subjectID"),
		RightType:   RightType(chi.URLParam(request, "rightType")),
	}
}

// listBucket returns the shares with the summary in meta.
func (handler *Handler) listBucket(writer http.ResponseWriter, request *http.Request) {
	breakdown, err := handler.service.Breakdown(request.Context(), bucketFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKWithMeta(writer, breakdown.Shares, breakdown.Summary)
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	breakdown, err := handler.service.Breakdown(request.Context(), bucketFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, breakdown.Summary)
}

func (handler *Handler) createShare(writer http.ResponseWriter, request *http.Request) {
	var input ShareInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	share, err := handler.service.CreateShare(request.Context(), bucketFromRequest(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, share)
}

func (handler *Handler) replaceBucket(writer http.ResponseWriter, request *http.Request) {
	var input replaceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	breakdown, err := handler.service.ReplaceBucket(request.Context(), bucketFromRequest(request), input.Shares)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKWithMeta(writer, breakdown.Shares, breakdown.Summary)
}

func (handler *Handler) updateShare(writer http.ResponseWriter, request *http.Request) {
	shareID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ShareInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	share, err := handler.service.UpdateShare(request.Context(), shareID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, share)
}

func (handler *Handler) deleteShare(writer http.ResponseWriter, request *http.Request) {
	shareID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteShare(request.Context(), shareID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
