// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/taibuivan/harmonia/internal/platform/apperr"
	"github.com/taibuivan/harmonia/internal/platform/validate"
	"github.com/taibuivan/harmonia/pkg/pointer"
	"github.com/taibuivan/harmonia/pkg/slug"
	"github.com/taibuivan/harmonia/pkg/uuid"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// maxSlugAttempts bounds the numeric suffixes tried for a taken slug.
const maxSlugAttempts = 50

// # Service Layer

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

// # Song Lookups

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Song, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
Get fetches a song by UUID or slug.

Description: Identifiers shaped like a UUID are resolved by primary key,
anything else by slug.
*/
func (service *Service) Get(context context.Context, identifier string) (*Song, error) {
	if uuidPattern.MatchString(identifier) {
		return service.repo.FindByID(context, strings.ToLower(identifier))
	}
	return service.repo.FindBySlug(context, identifier)
}

// # Song Mutations

/*
Create persists a new song.

Description: The slug is derived from the title unless provided. A taken
slug gets a numeric suffix ("midnight-drive-2"). Status defaults to draft.
*/
func (service *Service) Create(context context.Context, song *Song) error {
	normalize(song)
	if song.Status == "" {
		song.Status = StatusDraft
	}

	if err := validateSong(song); err != nil {
		return err
	}

	base := song.Slug
	if base == "" {
		base = slug.From(song.Title)
	}
	unique, err := service.uniqueSlug(context, base)
	if err != nil {
		return err
	}

	song.ID = uuid.New()
	song.Slug = unique

	if err := service.repo.Create(context, song); err != nil {
		return err
	}

	service.logger.Info("song_created",
		slog.String("song_id", song.ID),
		slog.String("slug", song.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, song *Song) error {
	normalize(song)
	if err := validateSong(song); err != nil {
		return err
	}

	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	song.ID = current.ID
	if song.Slug == "" {
		song.Slug = current.Slug
	}
	if song.Status == "" {
		song.Status = current.Status
	}

	if song.Slug != current.Slug {
		exists, err := service.repo.SlugExists(context, song.Slug)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("Slug is already used by another song")
		}
	}

	if err := service.repo.Update(context, song); err != nil {
		return err
	}

	service.logger.Info("song_updated", slog.String("song_id", song.ID), slog.String("status", string(song.Status)))
	return nil
}

// Delete soft-deletes a song. Works and recordings keep their reference.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("song_deleted", slog.String("song_id", id))
	return nil
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
	return "", apperr.Conflict("Could not find a free slug for this title")
}

func normalize(song *Song) {
	song.Title = strings.TrimSpace(song.Title)
	song.Slug = strings.TrimSpace(song.Slug)
	song.Genre = pointer.TrimmedOrNil(song.Genre)
	song.ArtistID = pointer.TrimmedOrNil(song.ArtistID)
}

func validateSong(song *Song) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, song.Title).MaxLen(FieldTitle, song.Title, 300)
	if song.Slug != "" {
		validator.Slug(FieldSlug, song.Slug).MaxLen(FieldSlug, song.Slug, 200)
	} else {
		validator.Custom(FieldTitle, slug.From(song.Title) == "" && song.Title != "", "Title must contain letters or digits")
	}
	validator.OptionalUUID(FieldArtistID, song.ArtistID)
	if song.Genre != nil {
		validator.MaxLen(FieldGenre, *song.Genre, 100)
	}
	if song.Status != "" {
		validator.OneOf(FieldStatus, string(song.Status), string(StatusDraft), string(StatusActive), string(StatusArchived))
	}

	return validator.Err()
}
