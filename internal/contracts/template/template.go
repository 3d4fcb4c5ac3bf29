// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package template stores contract templates and renders them against a deal.

Template bodies use Go text/template syntax. The render data exposes the
deal, its revenue-share timeline and the saved terms draft when one exists:

	This agreement starts on {{date .Deal.StartDate}} for {{.Deal.Territory}}.
	{{with .Terms}}Year 1 live commission: {{pct (.Rate 1 "live")}}{{end}}
*/
package template

import (
	"time"

	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/pkg/date"
)

// Kind groups templates by the agreement they draft.
type Kind string

const (
	KindDistribution Kind = "distribution"
	KindArtistSales  Kind = "artist_sales"
	KindPublishing   Kind = "publishing"
	KindGeneral      Kind = "general"
)

// Template is a named, slugged contract body.
type Template struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Kind      Kind       `json:"kind"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Filter narrows a template listing.
type Filter struct {
	Kind Kind
}

// RenderData is the value a template body executes against.
type RenderData struct {
	Deal        *distribution.Deal
	Timeline    *distribution.Timeline
	Terms       *terms.Draft
	GeneratedOn date.Date
}

// GenerateInput selects the deal to render against.
type GenerateInput struct {
	DealID string `json:"deal_id"`
}

// Generated is a rendered contract.
type Generated struct {
	TemplateID string    `json:"template_id"`
	DealID     string    `json:"deal_id"`
	Content    string    `json:"content"`
	HasTerms   bool      `json:"has_terms"`
	RenderedOn date.Date `json:"rendered_on"`
}

// Global field names for validation
const (
	FieldName   = "name"
	FieldSlug   = "slug"
	FieldKind   = "kind"
	FieldBody   = "body"
	FieldDealID = "deal_id"
)
