// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package distribution

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	requestutil "github.com/taibuivan/harmonia/internal/platform/request"
	"github.com/taibuivan/harmonia/internal/platform/respond"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/pkg/date"
	"github.com/taibuivan/harmonia/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/deals.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRole(sec.RoleViewer))
		viewer.Get("/", handler.listDeals)
		viewer.Get("/{id}", handler.getDeal)
		viewer.Get("/{id}/revenue-shares", handler.timeline)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireRole(sec.RoleManager))
		manager.Post("/", handler.createDeal)
		manager.Patch("/{id}", handler.updateDeal)
		manager.Delete("/{id}", handler.deleteDeal)
		manager.Post("/{id}/revenue-shares", handler.addRevenueShare)
		manager.Delete("/{id}/revenue-shares/{shareID}", handler.removeRevenueShare)
	})

	return router
}

func (handler *Handler) listDeals(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	query := request.URL.Query()
	filter := Filter{
		Kind:     Kind(query.Get("kind")),
		Status:   Status(query.Get("status")),
		EntityID: query.Get("entity_id"),
		Platform: query.Get("platform"),
	}

	deals, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, deals, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getDeal(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deal, err := handler.service.Get(request.Context(), dealID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deal)
}

func (handler *Handler) createDeal(writer http.ResponseWriter, request *http.Request) {
	var input Deal
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

func (handler *Handler) updateDeal(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Deal
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), dealID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDeal(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), dealID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// timeline handles GET /{id}/revenue-shares?as_of=YYYY-MM-DD (defaults to today).
func (handler *Handler) timeline(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	asOf, err := requestutil.Date(request, "as_of", date.Today().Time)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	timeline, err := handler.service.Timeline(request.Context(), dealID, date.Of(asOf))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, timeline)
}

func (handler *Handler) addRevenueShare(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RevenueShare
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddRevenueShare(request.Context(), dealID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) removeRevenueShare(writer http.ResponseWriter, request *http.Request) {
	dealID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	shareID, err := requestutil.ID(request, "shareID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveRevenueShare(request.Context(), dealID, shareID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
