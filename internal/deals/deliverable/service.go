// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliverable

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/slice"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

// maxPackItems bounds how many deliverables one pack may expand into.
const maxPackItems = 200

// DealReader resolves the deal a deliverable belongs to.
type DealReader interface {
	Get(ctx context.Context, id string) (*distribution.Deal, error)
}

// # Service Layer

type Service struct {
	repo   Repository
	deals  DealReader
	logger *slog.Logger
}

func NewService(repo Repository, deals DealReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		deals:  deals,
		logger: logger,
	}
}

// # Deliverables

// ListByDeal returns the deliverables of an existing deal.
func (service *Service) ListByDeal(context context.Context, dealID string) ([]*Deliverable, error) {
	if _, err := service.deals.Get(context, dealID); err != nil {
		return nil, err
	}
	return service.repo.ListByDeal(context, dealID)
}

func (service *Service) Create(context context.Context, d *Deliverable) error {
	normalize(d)
	if d.Status == "" {
		d.Status = StatusPending
	}

	validator := &validate.Validator{}
	validator.Required(FieldDealID, d.DealID).UUID(FieldDealID, d.DealID)
	validateDeliverable(validator, d)
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.deals.Get(context, d.DealID); err != nil {
		return err
	}

	d.ID = uuid.New()
	if err := service.repo.Create(context, d); err != nil {
		return err
	}

	service.logger.Info("deliverable_created",
		slog.String("deliverable_id", d.ID),
		slog.String("deal_id", d.DealID),
		slog.String("kind", string(d.Kind)),
	)
	return nil
}

// Update replaces the mutable fields of a deliverable. The deal is fixed.
func (service *Service) Update(context context.Context, id string, d *Deliverable) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	normalize(d)
	d.ID = current.ID
	d.DealID = current.DealID
	if d.Status == "" {
		d.Status = current.Status
	}

	validator := &validate.Validator{}
	validateDeliverable(validator, d)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, d); err != nil {
		return err
	}

	service.logger.Info("deliverable_updated", slog.String("deliverable_id", d.ID), slog.String("status", string(d.Status)))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("deliverable_deleted", slog.String("deliverable_id", id))
	return nil
}

// # Packs

func (service *Service) ListPacks(context context.Context) ([]*Pack, error) {
	return service.repo.ListPacks(context)
}

func (service *Service) GetPack(context context.Context, id string) (*Pack, error) {
	return service.repo.FindPack(context, id)
}

// CreatePack validates and stores a pack. Item positions follow input order.
func (service *Service) CreatePack(context context.Context, p *Pack) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = pointer.TrimmedOrNil(p.Description)

	validator := &validate.Validator{}
	validator.Required(FieldName, p.Name).MaxLen(FieldName, p.Name, 200)
	validator.Custom(FieldItems, len(p.Items) == 0, "A pack needs at least one item")
	validator.Custom(FieldItems, len(p.Items) > maxPackItems, fmt.Sprintf("Maximum %d items", maxPackItems))

	for index, item := range p.Items {
		field := fmt.Sprintf("%s[%d]", FieldItems, index)
		if item == nil {
			validator.Custom(field, true, "This item is empty")
			continue
		}
		item.Name = strings.TrimSpace(item.Name)
		item.Notes = pointer.TrimmedOrNil(item.Notes)
		item.Position = index + 1

		validator.Required(field+"."+FieldName, item.Name).MaxLen(field+"."+FieldName, item.Name, 200)
		validator.OneOf(field+"."+FieldKind, string(item.Kind), kindNames()...)
		if item.DueOffsetDays != nil {
			validator.Range(field+"."+FieldDueOffsetDays, *item.DueOffsetDays, 0, 3650)
		}
	}
	if err := validator.Err(); err != nil {
		return err
	}

	p.ID = uuid.New()
	for _, item := range p.Items {
		item.ID = uuid.New()
	}

	if err := service.repo.CreatePack(context, p); err != nil {
		return err
	}

	service.logger.Info("deliverable_pack_created", slog.String("pack_id", p.ID), slog.Int("items", len(p.Items)))
	return nil
}

func (service *Service) DeletePack(context context.Context, id string) error {
	if err := service.repo.DeletePack(context, id); err != nil {
		return err
	}

	service.logger.Warn("deliverable_pack_deleted", slog.String("pack_id", id))
	return nil
}

/*
ApplyPack expands a pack into deliverables on a deal.

Description: Due dates are anchored on input.StartDate, or the deal's start
date when absent. All deliverables are written in one transaction.

Returns:
  - []*Deliverable: The created deliverables in pack order
  - error: Not found (deal or pack), or storage failures
*/
func (service *Service) ApplyPack(context context.Context, packID string, input ApplyInput) ([]*Deliverable, error) {
	validator := &validate.Validator{}
	validator.Required(FieldDealID, input.DealID).UUID(FieldDealID, input.DealID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	deal, err := service.deals.Get(context, input.DealID)
	if err != nil {
		return nil, err
	}

	pack, err := service.repo.FindPack(context, packID)
	if err != nil {
		return nil, err
	}

	start := pointer.Fallback(input.StartDate, deal.StartDate)
	created := pack.Expand(deal.ID, start)
	for _, d := range created {
		d.ID = uuid.New()
	}

	if err := service.repo.CreateMany(context, created); err != nil {
		return nil, err
	}

	service.logger.Info("deliverable_pack_applied",
		slog.String("pack_id", pack.ID),
		slog.String("deal_id", deal.ID),
		slog.Int("created", len(created)),
	)
	return created, nil
}

// # Helpers

func kindNames() []string {
	return slice.Map(Kinds, func(kind Kind) string { return string(kind) })
}

func normalize(d *Deliverable) {
	d.Name = strings.TrimSpace(d.Name)
	d.DealID = strings.ToLower(strings.TrimSpace(d.DealID))
	d.Notes = pointer.TrimmedOrNil(d.Notes)
}

func validateDeliverable(validator *validate.Validator, d *Deliverable) {
	validator.Required(FieldName, d.Name).MaxLen(FieldName, d.Name, 200)
	validator.OneOf(FieldKind, string(d.Kind), kindNames()...)
	validator.OneOf(FieldStatus, string(d.Status),
		string(StatusPending), string(StatusSubmitted), string(StatusApproved), string(StatusRejected))
	if d.Notes != nil {
		validator.MaxLen(FieldNotes, *d.Notes, 4000)
	}
}
