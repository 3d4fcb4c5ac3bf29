// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/validate"
)

// DealReader resolves the deal a draft belongs to.
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

// Load returns the saved draft of a deal. A deal without a draft is a 404.
func (service *Service) Load(context context.Context, dealID string) (*Draft, error) {
	draft, err := service.repo.Find(context, dealID)
	if err != nil {
		return nil, err
	}
	draft.Normalize()
	return draft, nil
}

/*
Save stores a draft with optimistic concurrency.

Description: input.Version must be the version the caller last loaded, or 0
for the first save. A mismatch means someone else saved in between and is
reported as 409 without touching the stored draft.

Returns:
  - *Draft: The stored draft carrying its new version
  - error: Validation, not found (deal), or conflict (stale version)
*/
func (service *Service) Save(context context.Context, dealID string, input SaveInput, userID string) (*Draft, error) {
	input.Terms.Normalize()

	validator := &validate.Validator{}
	validator.Custom(FieldVersion, input.Version < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := input.Terms.Validate(); err != nil {
		return nil, err
	}

	if _, err := service.deals.Get(context, dealID); err != nil {
		return nil, err
	}

	draft := &Draft{DealID: dealID, Terms: input.Terms}
	if userID != "" {
		draft.UpdatedBy = &userID
	}

	if input.Version == 0 {
		if err := service.repo.Insert(context, draft); err != nil {
			if apperr.HasCode(err, "CONFLICT") {
				return nil, service.staleError(context, dealID)
			}
			return nil, err
		}
	} else {
		updated, err := service.repo.UpdateVersioned(context, draft, input.Version)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, service.staleError(context, dealID)
		}
	}

	service.logger.Info("terms_draft_saved",
		slog.String("deal_id", dealID),
		slog.Int("version", draft.Version),
		slog.Int("duration_years", draft.DurationYears),
	)
	return draft, nil
}

func (service *Service) Discard(context context.Context, dealID string) error {
	if err := service.repo.Delete(context, dealID); err != nil {
		return err
	}

	service.logger.Warn("terms_draft_discarded", slog.String("deal_id", dealID))
	return nil
}

// staleError reports the version currently stored, or 404 when the draft vanished.
func (service *Service) staleError(context context.Context, dealID string) error {
	current, err := service.repo.Find(context, dealID)
	if err != nil {
		return err
	}

	service.logger.Warn("terms_draft_conflict", slog.String("deal_id", dealID), slog.Int("current_version", current.Version))
	return apperr.Conflict(fmt.Sprintf("Draft was saved by someone else (current version %d); reload before saving", current.Version))
}
