// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package song manages catalog songs, the release-facing items that group
// musical works and their recordings.
package song

import (
	"time"

	"github.com/taibuivan/harmonia/pkg/date"
)

// Status is the lifecycle state of a [Song].
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Song is a catalog item.
type Song struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	ArtistID    *string    `json:"artist_id"`
	ReleaseDate *date.Date `json:"release_date"`
	Genre       *string    `json:"genre"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Filter holds the parameters for a paginated song search.
type Filter struct {
	Status   Status
	ArtistID string
	Query    string // match on title
}

// Global field names for validation
const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldArtistID = "artist_id"
	FieldGenre    = "genre"
	FieldStatus   = "status"
)
