// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

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

// SplitReader loads the share breakdown of a bucket. [split.Service] satisfies it.
type SplitReader interface {
	Breakdown(context context.Context, bucket split.Bucket) (*split.Breakdown, error)
}

// CreditReader lists credits of a subject. [credit.Service] satisfies it.
type CreditReader interface {
	List(context context.Context, subjectType credit.SubjectType, subjectID string) ([]*credit.Credit, error)
}

// # Service Layer

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

// # Work Lookups

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetDetail loads a work with its writer and publisher splits and credits.

Description: The three dependent reads run concurrently once the work is
known to exist; the first failure cancels the others.
*/
func (service *Service) GetDetail(ctx context.Context, id string) (*Detail, error) {
	work, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Work: work}
	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		breakdown, err := service.splits.Breakdown(groupContext, split.Bucket{
			SubjectType: split.SubjectWork, SubjectID: work.ID, RightType: split.RightWriter,
		})
		detail.WriterSplits = breakdown
		return err
	})

	group.Go(func() error {
		breakdown, err := service.splits.Breakdown(groupContext, split.Bucket{
			SubjectType: split.SubjectWork, SubjectID: work.ID, RightType: split.RightPublisher,
		})
		detail.PublisherSplits = breakdown
		return err
	})

	group.Go(func() error {
		credits, err := service.credits.List(groupContext, credit.SubjectWork, work.ID)
		detail.Credits = credits
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// # Work Mutations

/*
Create persists a new work.

Description: Optional fields that are blank after trimming are stored as NULL,
so a work created with only a title has no other values. The ISWC is stored
in compact form.
*/
func (service *Service) Create(context context.Context, work *Work) error {
	if err := normalizeAndValidate(work); err != nil {
		return err
	}

	work.ID = uuid.New()
	if err := service.repo.Create(context, work); err != nil {
		return err
	}

	service.logger.Info("work_created",
		slog.String("work_id", work.ID),
		slog.String("title", work.Title),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, work *Work) error {
	work.ID = id
	if err := normalizeAndValidate(work); err != nil {
		return err
	}

	if err := service.repo.Update(context, work); err != nil {
		return err
	}

	service.logger.Info("work_updated", slog.String("work_id", work.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("work_deleted", slog.String("work_id", id))
	return nil
}

// # Helpers

func normalizeAndValidate(work *Work) error {
	work.Title = strings.TrimSpace(work.Title)
	work.SongID = pointer.TrimmedOrNil(work.SongID)
	work.ISWC = pointer.TrimmedOrNil(work.ISWC)
	work.AlternateTitle = pointer.TrimmedOrNil(work.AlternateTitle)
	work.Language = pointer.TrimmedOrNil(work.Language)
	work.Genre = pointer.TrimmedOrNil(work.Genre)
	work.Notes = pointer.TrimmedOrNil(work.Notes)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, work.Title).MaxLen(FieldTitle, work.Title, 300)
	validator.OptionalUUID(FieldSongID, work.SongID)

	if work.ISWC != nil {
		compact, ok := NormalizeISWC(*work.ISWC)
		validator.Custom(FieldISWC, !ok, "Must be a valid ISWC such as T-034.524.680-1")
		if ok {
			work.ISWC = &compact
		}
	}
	if work.AlternateTitle != nil {
		validator.MaxLen(FieldAlternateTitle, *work.AlternateTitle, 300)
	}
	if work.Language != nil {
		validator.MaxLen(FieldLanguage, *work.Language, 35)
	}
	if work.Genre != nil {
		validator.MaxLen(FieldGenre, *work.Genre, 100)
	}
	if work.Notes != nil {
		validator.MaxLen(FieldNotes, *work.Notes, 5000)
	}

	return validator.Err()
}
