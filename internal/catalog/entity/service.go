// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

// Sealer encrypts sensitive values at rest. [sec.Sealer] satisfies it.
type Sealer interface {
	Seal(plaintext, associatedData string) ([]byte, error)
	Open(sealed []byte, associatedData string) (string, error)
}

// # Service Layer

// Service orchestrates entity management and sensitive field handling.
type Service struct {
	repo   Repository
	sealer Sealer
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, sealer Sealer, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sealer: sealer,
		logger: logger,
	}
}

// # Entity Lookups

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Entity, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id string) (*Entity, error) {
	return service.repo.FindByID(context, id)
}

// # Entity Mutations

/*
Create validates and persists a new entity.

Description: Optional text fields that are blank after trimming are stored as
NULL. Country codes are upper-cased.

Returns:
  - error: VALIDATION_ERROR on malformed input
*/
func (service *Service) Create(context context.Context, entity *Entity) error {
	normalize(entity)
	if err := validateEntity(entity); err != nil {
		return err
	}

	entity.ID = uuid.New()
	if err := service.repo.Create(context, entity); err != nil {
		return err
	}

	service.logger.Info("entity_created",
		slog.String("entity_id", entity.ID),
		slog.String("kind", string(entity.Kind)),
		slog.String("name", entity.Name),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, entity *Entity) error {
	entity.ID = id
	normalize(entity)
	if err := validateEntity(entity); err != nil {
		return err
	}

	if err := service.repo.Update(context, entity); err != nil {
		return err
	}

	service.logger.Info("entity_updated", slog.String("entity_id", entity.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("entity_deleted", slog.String("entity_id", id))
	return nil
}

// # Sensitive Fields

/*
SetSensitive seals and stores tax id and bank account values.

Description: Each value is sealed with the entity id and field name as
associated data, so a ciphertext copied onto another row or column fails to
open. An empty string clears the field.
*/
func (service *Service) SetSensitive(context context.Context, id string, input SensitiveInput) error {
	validator := &validate.Validator{}
	if input.TaxID != nil {
		validator.MaxLen(string(FieldTaxID), *input.TaxID, 64)
	}
	if input.BankAccount != nil {
		validator.MaxLen(string(FieldBankAccount), *input.BankAccount, 128)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	values := map[SensitiveField]*string{
		FieldTaxID:       input.TaxID,
		FieldBankAccount: input.BankAccount,
	}

	for field, value := range values {
		if value == nil {
			continue
		}

		var sealed []byte
		if plaintext := strings.TrimSpace(*value); plaintext != "" {
			var err error
			sealed, err = service.sealer.Seal(plaintext, associatedData(id, field))
			if err != nil {
				return apperr.Internal(err)
			}
		}

		if err := service.repo.SetSealed(context, id, field, sealed); err != nil {
			return err
		}

		service.logger.Info("entity_sensitive_updated",
			slog.String("entity_id", id),
			slog.String("field", string(field)),
			slog.Bool("cleared", sealed == nil),
		)
	}

	return nil
}

/*
Reveal opens one sealed field.

Returns:
  - *Revealed: The plaintext value
  - error: NOT_FOUND when the field is unset, NEEDS_REENTRY (422) when the
    stored value cannot be decrypted and must be entered again
*/
func (service *Service) Reveal(context context.Context, id string, field SensitiveField) (*Revealed, error) {
	if !field.Valid() {
		return nil, validate.RequiredError("field", "Must be one of: tax_id, bank_account")
	}

	sealed, err := service.repo.GetSealed(context, id, field)
	if err != nil {
		return nil, err
	}
	if sealed == nil {
		return nil, apperr.NotFound("Value")
	}

	plaintext, err := service.sealer.Open(sealed, associatedData(id, field))
	if err != nil {
		service.logger.Error("entity_sensitive_unreadable",
			slog.String("entity_id", id),
			slog.String("field", string(field)),
			slog.Any("error", err),
		)
		return nil, apperr.NeedsReentry(string(field), err)
	}

	service.logger.Info("entity_sensitive_revealed",
		slog.String("entity_id", id),
		slog.String("field", string(field)),
	)
	return &Revealed{Field: field, Value: plaintext}, nil
}

// # Helpers

func associatedData(id string, field SensitiveField) string {
	return id + ":" + string(field)
}

func normalize(entity *Entity) {
	entity.Name = strings.TrimSpace(entity.Name)
	entity.LegalName = pointer.TrimmedOrNil(entity.LegalName)
	entity.Country = pointer.TrimmedOrNil(entity.Country)
	entity.IPI = pointer.TrimmedOrNil(entity.IPI)
	entity.Email = pointer.TrimmedOrNil(entity.Email)
	entity.Notes = pointer.TrimmedOrNil(entity.Notes)

	if entity.Country != nil {
		entity.Country = pointer.To(strings.ToUpper(*entity.Country))
	}
}

func validateEntity(entity *Entity) error {
	validator := &validate.Validator{}

	validator.OneOf(FieldKind, string(entity.Kind), string(KindArtist), string(KindLabel), string(KindPublisher))
	validator.Required(FieldName, entity.Name).MaxLen(FieldName, entity.Name, 200)

	if entity.LegalName != nil {
		validator.MaxLen(FieldLegalName, *entity.LegalName, 300)
	}
	if entity.Country != nil {
		validator.Custom(FieldCountry, len(*entity.Country) != 2, "Must be an ISO 3166-1 alpha-2 code")
	}
	if entity.IPI != nil {
		validator.Custom(FieldIPI, !isDigits(*entity.IPI) || len(*entity.IPI) < 9 || len(*entity.IPI) > 11,
			"Must be 9 to 11 digits")
	}
	if entity.Email != nil {
		validator.Email(FieldEmail, *entity.Email)
	}
	if entity.Notes != nil {
		validator.MaxLen(FieldNotes, *entity.Notes, 5000)
	}

	return validator.Err()
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
