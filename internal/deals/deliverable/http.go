// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliverable

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	requestutil "github.com/taibuivan/harmonia/internal/platform/request"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/deliverables.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listDeliverables)
		viewer.Get("/packs", handler.listPacks)
		viewer.Get("/packs/{id}", handler.getPack)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createDeliverable)
		manager.Patch("/{id}", handler.updateDeliverable)
		manager.Delete("/{id}", handler.deleteDeliverable)
		manager.Post("/packs", handler.createPack)
		manager.Post("/packs/{id}/apply", handler.applyPack)
		manager.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/packs/{id}", handler.deletePack)
	})

	return router
}

// listDeliverables handles GET /?deal_id=.
func (handler *Handler) listDeliverables(writer http.ResponseWriter, request *http.Request) {
	dealID := request.URL.Query().Get("deal_id")
	if dealID == "" {
		respond.Error(writer, request, validate.RequiredError(FieldDealID, "This field is required"))
		return
	}

	items, err := handler.service.ListByDeal(request.Context(), dealID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}

func (handler *Handler) createDeliverable(writer http.ResponseWriter, request *http.Request) {
	var input Deliverable
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

func (handler *Handler) updateDeliverable(writer http.ResponseWriter, request *http.Request) {
	deliverableID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Deliverable
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), deliverableID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDeliverable(writer http.ResponseWriter, request *http.Request) {
	deliverableID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), deliverableID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Packs

func (handler *Handler) listPacks(writer http.ResponseWriter, request *http.Request) {
	packs, err := handler.service.ListPacks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, packs)
}

func (handler *Handler) getPack(writer http.ResponseWriter, request *http.Request) {
	packID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pack, err := handler.service.GetPack(request.Context(), packID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pack)
}

func (handler *Handler) createPack(writer http.ResponseWriter, request *http.Request) {
	var input Pack
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePack(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deletePack(writer http.ResponseWriter, request *http.Request) {
	packID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePack(request.Context(), packID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// applyPack handles POST /packs/{id}/apply with body {"deal_id", "start_date"}.
func (handler *Handler) applyPack(writer http.ResponseWriter, request *http.Request) {
	packID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ApplyInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.ApplyPack(request.Context(), packID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}
