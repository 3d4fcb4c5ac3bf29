// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recording

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

type SplitReader interface {
	Breakdown(context context.Context, bucket split.Bucket) (*split.Breakdown, error)
}

type CreditReader interface {
	List(context context.Context, subjectType credit.SubjectType, subjectID string) ([]*credit.Credit, error)
}

type Service struct {
	repo    Repository
	splits  SplitReader
	credits CreditReader
	logger  *slog.Logger
}

func NewService(repo Repository, splits SplitReader, credits CreditReader, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		splits:  splits,
		credits: credits,
		logger:  logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Recording, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// GetDetail loads a recording with its master splits and credits.
func (service *Service) GetDetail(ctx context.Context, id string) (*Detail, error) {
	recording, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Recording: recording}
	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		breakdown, err := service.splits.Breakdown(groupContext, split.Bucket{
			SubjectType: split.SubjectRecording, SubjectID: recording.ID, RightType: split.RightMaster,
		})
		detail.MasterSplits = breakdown
		return err
	})

	group.Go(func() error {
		credits, err := service.credits.List(groupContext, credit.SubjectRecording, recording.ID)
		detail.Credits = credits
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (service *Service) Create(context context.Context, recording *Recording) error {
	if err := normalizeAndValidate(recording); err != nil {
		return err
	}

	recording.ID = uuid.New()
	if err := service.repo.Create(context, recording); err != nil {
		return err
	}

	service.logger.Info("recording_created",
		slog.String("recording_id", recording.ID),
		slog.String("title", recording.Title),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, recording *Recording) error {
	recording.ID = id
	if err := normalizeAndValidate(recording); err != nil {
		return err
	}

	if err := service.repo.Update(context, recording); err != nil {
		return err
	}

	service.logger.Info("recording_updated", slog.String("recording_id", recording.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("recording_deleted", slog.String("recording_id", id))
	return nil
}

func normalizeAndValidate(recording *Recording) error {
	recording.Title = strings.TrimSpace(recording.Title)
	recording.WorkID = pointer.TrimmedOrNil(recording.WorkID)
	recording.SongID = pointer.TrimmedOrNil(recording.SongID)
	recording.ISRC = pointer.TrimmedOrNil(recording.ISRC)
	recording.Version = pointer.TrimmedOrNil(recording.Version)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, recording.Title).MaxLen(FieldTitle, recording.Title, 300)
	validator.OptionalUUID(FieldWorkID, recording.WorkID)
	validator.OptionalUUID(FieldSongID, recording.SongID)

	if recording.ISRC != nil {
		compact, ok := NormalizeISRC(*recording.ISRC)
		validator.Custom(FieldISRC, !ok, "Must be a valid ISRC such as US-S1Z-99-00001")
		if ok {
			recording.ISRC = &compact
		}
	}
	if recording.Version != nil {
		validator.MaxLen(FieldVersion, *recording.Version, 100)
	}
	if recording.DurationSeconds != nil {
		validator.Range(FieldDurationSeconds, *recording.DurationSeconds, 1, 24*60*60)
	}

	return validator.Err()
}
