// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/harmonia/internal/catalog/entity"
	"github.com/taibuivan/harmonia/internal/catalog/work"
	"github.com/taibuivan/harmonia/pkg/pointer"
)

// WorkInput is the create payload for a work. Blank optional fields are left
// out of the request body entirely.
type WorkInput struct {
	Title          string  `json:"title"`
	SongID         *string `json:"song_id,omitempty"`
	ISWC           *string `json:"iswc,omitempty"`
	AlternateTitle *string `json:"alternate_title,omitempty"`
	Language       *string `json:"language,omitempty"`
	Genre          *string `json:"genre,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// trimmed drops blank optional fields so they are omitted from the body.
func (input WorkInput) trimmed() WorkInput {
	return WorkInput{
		Title:          strings.TrimSpace(input.Title),
		SongID:         pointer.TrimmedOrNil(input.SongID),
		ISWC:           pointer.TrimmedOrNil(input.ISWC),
		AlternateTitle: pointer.TrimmedOrNil(input.AlternateTitle),
		Language:       pointer.TrimmedOrNil(input.Language),
		Genre:          pointer.TrimmedOrNil(input.Genre),
		Notes:          pointer.TrimmedOrNil(input.Notes),
	}
}

// CreateWork registers a new composition.
func (c *Client) CreateWork(ctx context.Context, input WorkInput) (*work.Work, error) {
	var created work.Work
	if err := c.mutate(ctx, http.MethodPost, "/works/", input.trimmed(), &created, "/works", "/songs"); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetWork returns the work with its split summaries and credits.
func (c *Client) GetWork(ctx context.Context, workID string) (*work.Detail, error) {
	var detail work.Detail
	if err := c.get(ctx, "/works/"+url.PathEscape(workID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetEntity returns one rights holder.
func (c *Client) GetEntity(ctx context.Context, entityID string) (*entity.Entity, error) {
	var found entity.Entity
	if err := c.get(ctx, "/entities/"+url.PathEscape(entityID), &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// RevealSensitive decrypts one sealed entity field. An [*APIError] with
// NeedsReentry set means the stored value must be entered again.
func (c *Client) RevealSensitive(ctx context.Context, entityID string, field entity.SensitiveField) (string, error) {
	var revealed entity.Revealed
	path := "/entities/" + url.PathEscape(entityID) + "/sensitive/" + url.PathEscape(string(field)) + "/reveal"
	if err := c.mutate(ctx, http.MethodPost, path, nil, &revealed); err != nil {
		return "", err
	}
	return revealed.Value, nil
}
