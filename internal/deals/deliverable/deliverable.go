// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package deliverable tracks the assets owed under a deal and the reusable
packs that expand into them.

A [Pack] is a named template of line items. Applying a pack to a deal
creates one [Deliverable] per item in a single transaction, each tagged with
a note pointing back at the pack.
*/
package deliverable

import (
	"fmt"
	"time"

	"github.com/taibuivan/harmonia/pkg/date"
)

// Kind classifies what must be delivered.
type Kind string

const (
	KindAudio    Kind = "audio"
	KindArtwork  Kind = "artwork"
	KindMetadata Kind = "metadata"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

// Kinds lists every accepted [Kind].
var Kinds = []Kind{KindAudio, KindArtwork, KindMetadata, KindVideo, KindDocument, KindOther}

// Status is the review state of a [Deliverable].
type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Deliverable is one asset owed under a deal.
type Deliverable struct {
	ID        string     `json:"id"`
	DealID    string     `json:"deal_id"`
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	DueDate   *date.Date `json:"due_date"`
	Status    Status     `json:"status"`
	Notes     *string    `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// # Packs

// PackItem is one line of a [Pack].
type PackItem struct {
	ID            string  `json:"id"`
	Position      int     `json:"position"`
	Name          string  `json:"name"`
	Kind          Kind    `json:"kind"`
	DueOffsetDays *int    `json:"due_offset_days"`
	Notes         *string `json:"notes"`
}

// Pack is a named, ordered list of deliverable templates.
type Pack struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Items       []*PackItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ApplyInput selects the deal a pack expands into.
//
// StartDate anchors due_offset_days; it defaults to the deal's start date.
type ApplyInput struct {
	DealID    string     `json:"deal_id"`
	StartDate *date.Date `json:"start_date"`
}

// PackNote is the back-reference stored on deliverables created from a pack.
func PackNote(packName string) string {
	return fmt.Sprintf("From pack: %s", packName)
}

/*
Expand turns the pack items into deliverables for dealID.

Items without an offset get no due date. An item note is kept below the
pack back-reference.
*/
func (p *Pack) Expand(dealID string, start date.Date) []*Deliverable {
	result := make([]*Deliverable, 0, len(p.Items))
	for _, item := range p.Items {
		note := PackNote(p.Name)
		if item.Notes != nil && *item.Notes != "" {
			note = note + "\n" + *item.Notes
		}

		d := &Deliverable{
			DealID: dealID,
			Name:   item.Name,
			Kind:   item.Kind,
			Status: StatusPending,
			Notes:  &note,
		}
		if item.DueOffsetDays != nil {
			due := start.AddDays(*item.DueOffsetDays)
			d.DueDate = &due
		}
		result = append(result, d)
	}
	return result
}

// Global field names for validation
const (
	FieldDealID        = "deal_id"
	FieldName          = "name"
	FieldKind          = "kind"
	FieldStatus        = "status"
	FieldNotes         = "notes"
	FieldItems         = "items"
	FieldDueOffsetDays = "due_offset_days"
	FieldDescription   = "description"
)
