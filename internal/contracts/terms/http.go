// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terms

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

// Routes returns a [chi.Router] mounted at /api/v1/contracts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireRole(sec.RoleViewer)).Get("/{dealID}/terms/draft", handler.loadDraft)

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Put("/{dealID}/terms/draft", handler.saveDraft)
		manager.Delete("/{dealID}/terms/draft", handler.discardDraft)
	})

	return router
}

func (handler *Handler) loadDraft(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "dealID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.Load(request.Context(), dealID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

func (handler *Handler) saveDraft(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "dealID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SaveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.Save(request.Context(), dealID, input, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

func (handler *Handler) discardDraft(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "dealID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Discard(request.Context(), dealID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
