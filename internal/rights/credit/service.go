// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/slice"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, subjectType SubjectType, subjectID string) ([]*Credit, error) {
	if err := validateSubject(subjectType, subjectID); err != nil {
		return nil, err
	}
	return service.repo.ListBySubject(context, subjectType, strings.ToLower(subjectID))
}

func (service *Service) Create(context context.Context, subjectType SubjectType, subjectID string, input Input) (*Credit, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEntityID, input.EntityID).UUID(FieldEntityID, input.EntityID)
	validateInput(validator, input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := validateSubject(subjectType, subjectID); err != nil {
		return nil, err
	}

	credit := &Credit{
		ID:          uuid.New(),
		SubjectType: subjectType,
		SubjectID:   strings.ToLower(subjectID),
		EntityID:    strings.ToLower(input.EntityID),
		Role:        input.Role,
		CreditedAs:  pointer.TrimmedOrNil(input.CreditedAs),
		ShareKind:   input.ShareKind,
		ShareValue:  input.ShareValue,
	}

	if err := service.repo.Create(context, credit); err != nil {
		return nil, err
	}

	service.logger.Info("credit_created",
		slog.String("credit_id", credit.ID),
		slog.String("subject_id", credit.SubjectID),
		slog.String("role", string(credit.Role)),
	)
	return credit, nil
}

// Update replaces role, display name and compensation. The entity is immutable.
func (service *Service) Update(context context.Context, id string, input Input) (*Credit, error) {
	validator := &validate.Validator{}
	validateInput(validator, input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	credit, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	credit.Role = input.Role
	credit.CreditedAs = pointer.TrimmedOrNil(input.CreditedAs)
	credit.ShareKind = input.ShareKind
	credit.ShareValue = input.ShareValue

	if err := service.repo.Update(context, credit); err != nil {
		return nil, err
	}

	service.logger.Info("credit_updated", slog.String("credit_id", credit.ID))
	return credit, nil
}

// Delete removes a credit. A missing credit yields NOT_FOUND.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("credit_deleted", slog.String("credit_id", id))
	return nil
}

func validateInput(validator *validate.Validator, input Input) {
	roles := slice.Map(Roles, func(role Role) string { return string(role) })
	validator.OneOf(FieldRole, string(input.Role), roles...)

	if input.CreditedAs != nil {
		validator.MaxLen(FieldCreditedAs, *input.CreditedAs, 200)
	}

	// share_kind and share_value travel together
	validator.Custom(FieldShareValue, input.ShareKind != nil && input.ShareValue == nil, "Required when share_kind is set")
	validator.Custom(FieldShareKind, input.ShareKind == nil && input.ShareValue != nil, "Required when share_value is set")

	if input.ShareKind != nil {
		validator.OneOf(FieldShareKind, string(*input.ShareKind),
			string(ShareKindPercentage), string(ShareKindPoints), string(ShareKindFlatFee))
	}
	if input.ShareValue != nil {
		validator.Custom(FieldShareValue, *input.ShareValue < 0, "Must not be negative")
		if input.ShareKind != nil && *input.ShareKind == ShareKindPercentage {
			validator.Percentage(FieldShareValue, *input.ShareValue)
		}
	}
}

func validateSubject(subjectType SubjectType, subjectID string) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldSubjectType, string(subjectType), string(SubjectWork), string(SubjectRecording))
	validator.UUID(FieldSubjectID, subjectID)
	return validator.Err()
}
