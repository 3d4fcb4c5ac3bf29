// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package distribution

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/date"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

// maxPlatforms bounds the platform list of one deal.
const maxPlatforms = 50

// # Service Layer

// Service holds deal and revenue-share business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Deals

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Deal, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id string) (*Deal, error) {
	return service.repo.FindByID(context, id)
}

/*
Create persists a new deal.

Description: Status defaults to draft and territory to "Worldwide". Platform
names are trimmed and de-duplicated case-insensitively, keeping first spelling.
*/
func (service *Service) Create(context context.Context, deal *Deal) error {
	normalize(deal)
	if deal.Status == "" {
		deal.Status = StatusDraft
	}

	validator := &validate.Validator{}
	validator.Required(FieldEntityID, deal.EntityID).UUID(FieldEntityID, deal.EntityID)
	validateDeal(validator, deal)
	if err := validator.Err(); err != nil {
		return err
	}

	deal.ID = uuid.New()
	if err := service.repo.Create(context, deal); err != nil {
		return err
	}

	service.logger.Info("deal_created",
		slog.String("deal_id", deal.ID),
		slog.String("kind", string(deal.Kind)),
		slog.String("entity_id", deal.EntityID),
	)
	return nil
}

// Update replaces the mutable fields of a deal. The counterparty is fixed.
func (service *Service) Update(context context.Context, id string, deal *Deal) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	normalize(deal)
	deal.ID = current.ID
	deal.EntityID = current.EntityID
	if deal.Status == "" {
		deal.Status = current.Status
	}
	if deal.Kind == "" {
		deal.Kind = current.Kind
	}

	validator := &validate.Validator{}
	validateDeal(validator, deal)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, deal); err != nil {
		return err
	}

	service.logger.Info("deal_updated", slog.String("deal_id", deal.ID), slog.String("status", string(deal.Status)))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("deal_deleted", slog.String("deal_id", id))
	return nil
}

// # Revenue Shares

// Timeline returns the revenue-share lines of a deal grouped around asOf.
func (service *Service) Timeline(context context.Context, dealID string, asOf date.Date) (*Timeline, error) {
	if _, err := service.repo.FindByID(context, dealID); err != nil {
		return nil, err
	}

	items, err := service.repo.ListRevenueShares(context, dealID)
	if err != nil {
		return nil, err
	}

	timeline := BucketRevenueShares(items, asOf)
	return &timeline, nil
}

func (service *Service) AddRevenueShare(context context.Context, dealID string, share *RevenueShare) error {
	if _, err := service.repo.FindByID(context, dealID); err != nil {
		return err
	}

	share.Label = strings.TrimSpace(share.Label)
	share.PartyEntityID = pointer.TrimmedOrNil(share.PartyEntityID)

	validator := &validate.Validator{}
	validator.Required(FieldLabel, share.Label).MaxLen(FieldLabel, share.Label, 200)
	validator.OptionalUUID(FieldPartyEntityID, share.PartyEntityID)
	validator.Percentage(FieldRatePercentage, share.RatePercentage)
	validator.Custom(FieldEffectiveFrom, share.EffectiveFrom.IsZero(), "This field is required")
	if share.EffectiveTo != nil {
		validator.Custom(FieldEffectiveTo, share.EffectiveTo.Before(share.EffectiveFrom), "Must not be before effective_from")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	share.ID = uuid.New()
	share.DealID = dealID
	if err := service.repo.CreateRevenueShare(context, share); err != nil {
		return err
	}

	service.logger.Info("revenue_share_created",
		slog.String("deal_id", dealID),
		slog.String("revenue_share_id", share.ID),
		slog.Float64("rate_percentage", share.RatePercentage),
	)
	return nil
}

func (service *Service) RemoveRevenueShare(context context.Context, dealID, id string) error {
	if err := service.repo.DeleteRevenueShare(context, dealID, id); err != nil {
		return err
	}

	service.logger.Warn("revenue_share_deleted", slog.String("deal_id", dealID), slog.String("revenue_share_id", id))
	return nil
}

// # Helpers

func normalize(deal *Deal) {
	deal.Title = strings.TrimSpace(deal.Title)
	deal.EntityID = strings.ToLower(strings.TrimSpace(deal.EntityID))
	deal.Territory = pointer.Fallback(pointer.TrimmedOrNil(&deal.Territory), constants.DefaultTerritory)

	seen := make(map[string]bool, len(deal.Platforms))
	platforms := make([]string, 0, len(deal.Platforms))
	for _, platform := range deal.Platforms {
		name := strings.TrimSpace(platform)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		platforms = append(platforms, name)
	}
	deal.Platforms = platforms
}

func validateDeal(validator *validate.Validator, deal *Deal) {
	validator.OneOf(FieldKind, string(deal.Kind), string(KindDistribution), string(KindArtistSales))
	validator.Required(FieldTitle, deal.Title).MaxLen(FieldTitle, deal.Title, 300)
	validator.OneOf(FieldStatus, string(deal.Status),
		string(StatusDraft), string(StatusActive), string(StatusExpired), string(StatusTerminated))
	validator.MaxLen(FieldTerritory, deal.Territory, 100)
	validator.Custom(FieldStartDate, deal.StartDate.IsZero(), "This field is required")
	if deal.EndDate != nil {
		validator.Custom(FieldEndDate, deal.EndDate.Before(deal.StartDate), "Must not be before start_date")
	}
	validator.Custom(FieldPlatforms, len(deal.Platforms) > maxPlatforms, "Too many platforms")
	for _, platform := range deal.Platforms {
		validator.MaxLen(FieldPlatforms, platform, 100)
	}
}
