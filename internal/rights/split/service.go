// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package split

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

// ErrLocked is returned when a locked share would be changed or removed.
var ErrLocked = apperr.Conflict("Share is locked; unlock it before changing its percentage or removing it")

// # Service Layer

// Service holds the split business rules.
type Service struct {
	repo         Repository
	enforceTotal bool
	logger       *slog.Logger
}

// NewService constructs a new [Service].
//
// When enforceTotal is set, whole-bucket replacements must add up to 100%.
// Single-share mutations are never rejected on totals since a bucket passes
// through incomplete states while it is edited one row at a time.
func NewService(repo Repository, enforceTotal bool, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		enforceTotal: enforceTotal,
		logger:       logger,
	}
}

// # Reads

// ListBucket returns the shares of a bucket.
func (service *Service) ListBucket(context context.Context, bucket Bucket) ([]*Share, error) {
	if err := validateBucket(bucket); err != nil {
		return nil, err
	}
	return service.repo.ListBucket(context, bucket)
}

// Breakdown returns the shares of a bucket and their summary.
func (service *Service) Breakdown(context context.Context, bucket Bucket) (*Breakdown, error) {
	shares, err := service.ListBucket(context, bucket)
	if err != nil {
		return nil, err
	}

	return &Breakdown{
		Bucket:  bucket,
		Shares:  shares,
		Summary: Summarize(shares),
	}, nil
}

// # Single Share Mutations

/*
CreateShare adds one share to a bucket.

Description: Territory defaults to "Worldwide" when blank. The total of the
bucket is not checked; use [Service.Breakdown] to display the deviation.

Returns:
  - *Share: The persisted share
  - error: VALIDATION_ERROR, or UNPROCESSABLE when the entity does not exist
*/
func (service *Service) CreateShare(context context.Context, bucket Bucket, input ShareInput) (*Share, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEntityID, input.EntityID).UUID(FieldEntityID, input.EntityID)
	validator.Custom(FieldSharePercentage, input.SharePercentage == nil, "This field is required")
	if input.SharePercentage != nil {
		validator.Percentage(FieldSharePercentage, *input.SharePercentage)
	}
	if input.Territory != nil {
		validator.MaxLen(FieldTerritory, *input.Territory, 100)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := validateBucket(bucket); err != nil {
		return nil, err
	}

	share := &Share{
		ID:              uuid.New(),
		SubjectType:     bucket.SubjectType,
		SubjectID:       strings.ToLower(bucket.SubjectID),
		RightType:       bucket.RightType,
		EntityID:        strings.ToLower(input.EntityID),
		SharePercentage: RoundPercentage(*input.SharePercentage),
		Territory:       territoryOrDefault(input.Territory),
		Locked:          pointer.Val(input.Locked),
	}

	if err := service.repo.Create(context, share); err != nil {
		return nil, err
	}

	service.logger.Info("share_created",
		slog.String("share_id", share.ID),
		slog.String("subject_type", string(share.SubjectType)),
		slog.String("subject_id", share.SubjectID),
		slog.String("right_type", string(share.RightType)),
		slog.Float64("share_percentage", share.SharePercentage),
	)
	return share, nil
}

/*
UpdateShare patches percentage, territory and lock flag of a share.

Description: A locked share keeps its percentage unless the same request
unlocks it. The entity of a share is immutable; delete and re-create instead.

Returns:
  - *Share: The updated share
  - error: NOT_FOUND, VALIDATION_ERROR, or CONFLICT when locked
*/
func (service *Service) UpdateShare(context context.Context, id string, input ShareInput) (*Share, error) {
	validator := &validate.Validator{}
	if input.SharePercentage != nil {
		validator.Percentage(FieldSharePercentage, *input.SharePercentage)
	}
	if input.Territory != nil {
		validator.MaxLen(FieldTerritory, *input.Territory, 100)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	share, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	unlocking := input.Locked != nil && !*input.Locked
	if input.SharePercentage != nil && RoundPercentage(*input.SharePercentage) != share.SharePercentage {
		if share.Locked && !unlocking {
			return nil, ErrLocked
		}
		share.SharePercentage = RoundPercentage(*input.SharePercentage)
	}
	if input.Territory != nil {
		share.Territory = territoryOrDefault(input.Territory)
	}
	if input.Locked != nil {
		share.Locked = *input.Locked
	}

	if err := service.repo.Update(context, share); err != nil {
		return nil, err
	}

	service.logger.Info("share_updated",
		slog.String("share_id", share.ID),
		slog.Float64("share_percentage", share.SharePercentage),
		slog.Bool("locked", share.Locked),
	)
	return share, nil
}

// DeleteShare removes an unlocked share.
func (service *Service) DeleteShare(context context.Context, id string) error {
	share, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if share.Locked {
		return ErrLocked
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("share_deleted",
		slog.String("share_id", id),
		slog.String("subject_id", share.SubjectID),
		slog.String("right_type", string(share.RightType)),
	)
	return nil
}

// # Bucket Replacement

/*
ReplaceBucket atomically swaps every share of a bucket.

Description: Inputs carrying the ID of an existing share keep that share's
identity and creation time. Every locked share of the bucket must be present
with its percentage unchanged. When total enforcement is enabled the new set
must be complete.

Returns:
  - *Breakdown: The bucket as stored after replacement
  - error: VALIDATION_ERROR, CONFLICT (locked share touched)
*/
func (service *Service) ReplaceBucket(context context.Context, bucket Bucket, inputs []ShareInput) (*Breakdown, error) {
	if err := validateBucket(bucket); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	for _, input := range inputs {
		validator.Required(FieldEntityID, input.EntityID).UUID(FieldEntityID, input.EntityID)
		validator.Custom(FieldSharePercentage, input.SharePercentage == nil, "This field is required")
		if input.SharePercentage != nil {
			validator.Percentage(FieldSharePercentage, *input.SharePercentage)
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.repo.ListBucket(context, bucket)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]*Share, len(current))
	for _, share := range current {
		existing[share.ID] = share
	}

	now := time.Now().UTC()
	next := make([]*Share, 0, len(inputs))
	kept := make(map[string]bool, len(inputs))

	for _, input := range inputs {
		share := &Share{
			ID:              uuid.New(),
			SubjectType:     bucket.SubjectType,
			SubjectID:       strings.ToLower(bucket.SubjectID),
			RightType:       bucket.RightType,
			EntityID:        strings.ToLower(input.EntityID),
			SharePercentage: RoundPercentage(*input.SharePercentage),
			Territory:       territoryOrDefault(input.Territory),
			Locked:          pointer.Val(input.Locked),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if previous, ok := existing[strings.ToLower(input.ID)]; ok {
			share.ID = previous.ID
			share.CreatedAt = previous.CreatedAt
			if input.Locked == nil {
				share.Locked = previous.Locked
			}
			kept[previous.ID] = true

			if previous.Locked && (previous.EntityID != share.EntityID ||
				math.Abs(previous.SharePercentage-share.SharePercentage) >= constants.SplitTolerance) {
				return nil, ErrLocked
			}
		}

		next = append(next, share)
	}

	for _, share := range current {
		if share.Locked && !kept[share.ID] {
			return nil, ErrLocked
		}
	}

	summary := Summarize(next)
	if service.enforceTotal && !summary.IsComplete {
		return nil, validate.RequiredError(FieldShares, "Shares must add up to 100%")
	}

	if err := service.repo.ReplaceBucket(context, bucket, next); err != nil {
		return nil, err
	}

	service.logger.Info("bucket_replaced",
		slog.String("subject_type", string(bucket.SubjectType)),
		slog.String("subject_id", bucket.SubjectID),
		slog.String("right_type", string(bucket.RightType)),
		slog.Int("shares", len(next)),
		slog.Float64("total", summary.Total),
	)

	return &Breakdown{Bucket: bucket, Shares: next, Summary: summary}, nil
}

// # Helpers

func validateBucket(bucket Bucket) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldSubjectType, string(bucket.SubjectType), string(SubjectWork), string(SubjectRecording))
	validator.UUID(FieldSubjectID, bucket.SubjectID)
	validator.Custom(FieldRightType, !bucket.Valid(), "Right type is not valid for this subject")
	return validator.Err()
}

func territoryOrDefault(territory *string) string {
	return pointer.Fallback(pointer.TrimmedOrNil(territory), constants.DefaultTerritory)
}
