// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/date"
	"github.com/taibuivan/harmonia/pkg/slug"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

const maxSlugAttempts = 50

// DealReader loads the deal side of the render data. [distribution.Service] satisfies it.
type DealReader interface {
	Get(ctx context.Context, id string) (*distribution.Deal, error)
	Timeline(ctx context.Context, dealID string, asOf date.Date) (*distribution.Timeline, error)
}

// TermsReader loads a saved terms draft. [terms.Service] satisfies it.
type TermsReader interface {
	Load(ctx context.Context, dealID string) (*terms.Draft, error)
}

// # Service Layer

type Service struct {
	repo   Repository
	deals  DealReader
	terms  TermsReader
	logger *slog.Logger
}

func NewService(repo Repository, deals DealReader, terms TermsReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		deals:  deals,
		terms:  terms,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Template, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id string) (*Template, error) {
	return service.repo.FindByID(context, id)
}

/*
Create persists a new template.

Description: The body must parse as a text/template. The slug comes from the
name unless provided and gets a numeric suffix when taken.
*/
func (service *Service) Create(context context.Context, template *Template) error {
	normalize(template)
	if template.Kind == "" {
		template.Kind = KindGeneral
	}
	if err := validateTemplate(template); err != nil {
		return err
	}

	base := template.Slug
	if base == "" {
		base = slug.From(template.Name)
	}
	unique, err := service.uniqueSlug(context, base)
	if err != nil {
		return err
	}

	template.ID = uuid.New()
	template.Slug = unique
	if err := service.repo.Create(context, template); err != nil {
		return err
	}

	service.logger.Info("template_created",
		slog.String("template_id", template.ID),
		slog.String("slug", template.Slug),
		slog.String("kind", string(template.Kind)),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, template *Template) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	normalize(template)
	template.ID = current.ID
	if template.Slug == "" {
		template.Slug = current.Slug
	}
	if template.Kind == "" {
		template.Kind = current.Kind
	}
	if template.Body == "" {
		template.Body = current.Body
	}
	if err := validateTemplate(template); err != nil {
		return err
	}

	if template.Slug != current.Slug {
		exists, err := service.repo.SlugExists(context, template.Slug)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("Slug is already used by another template")
		}
	}

	if err := service.repo.Update(context, template); err != nil {
		return err
	}

	service.logger.Info("template_updated", slog.String("template_id", template.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("template_deleted", slog.String("template_id", id))
	return nil
}

/*
Generate renders a template against a deal.

Description: The template, deal, revenue-share timeline and terms draft are
loaded concurrently. A deal without a saved draft renders with a nil Terms.

Returns:
  - *Generated: The rendered contract
  - error: Not found (template or deal), or a 422 when the body fails to execute
*/
func (service *Service) Generate(ctx context.Context, id string, input GenerateInput) (*Generated, error) {
	validator := &validate.Validator{}
	validator.Required(FieldDealID, input.DealID).UUID(FieldDealID, input.DealID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	today := date.Today()
	data := RenderData{GeneratedOn: today}
	var template *Template

	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		found, err := service.repo.FindByID(groupContext, id)
		template = found
		return err
	})

	group.Go(func() error {
		deal, err := service.deals.Get(groupContext, input.DealID)
		data.Deal = deal
		return err
	})

	group.Go(func() error {
		timeline, err := service.deals.Timeline(groupContext, input.DealID, today)
		data.Timeline = timeline
		return err
	})

	group.Go(func() error {
		draft, err := service.terms.Load(groupContext, input.DealID)
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil
		}
		data.Terms = draft
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	content, err := Render(template.Slug, template.Body, data)
	if err != nil {
		return nil, err
	}

	service.logger.Info("contract_generated",
		slog.String("template_id", template.ID),
		slog.String("deal_id", input.DealID),
		slog.Bool("has_terms", data.Terms != nil),
	)

	return &Generated{
		TemplateID: template.ID,
		DealID:     input.DealID,
		Content:    content,
		HasTerms:   data.Terms != nil,
		RenderedOn: today,
	}, nil
}

// # Helpers

func (service *Service) uniqueSlug(context context.Context, base string) (string, error) {
	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		exists, err := service.repo.SlugExists(context, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(attempt)
	}
	return "", apperr.Conflict("Could not find a free slug for this name")
}

func normalize(template *Template) {
	template.Name = strings.TrimSpace(template.Name)
	template.Slug = strings.TrimSpace(template.Slug)
}

func validateTemplate(template *Template) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, template.Name).MaxLen(FieldName, template.Name, 200)
	if template.Slug != "" {
		validator.Slug(FieldSlug, template.Slug).MaxLen(FieldSlug, template.Slug, 200)
	} else {
		validator.Custom(FieldName, slug.From(template.Name) == "" && template.Name != "", "Name must contain letters or digits")
	}
	validator.OneOf(FieldKind, string(template.Kind),
		string(KindDistribution), string(KindArtistSales), string(KindPublishing), string(KindGeneral))
	validator.Required(FieldBody, template.Body).MaxLen(FieldBody, template.Body, 200000)
	if err := validator.Err(); err != nil {
		return err
	}

	_, err := Parse(FieldBody, template.Body)
	return err
}
