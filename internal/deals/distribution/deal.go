// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package distribution manages distribution and artist-sales deals and the
revenue-share lines attached to them.

Revenue-share lines are dated. [BucketRevenueShares] splits them into past,
current and upcoming periods relative to a reference day, the way the deal
screen presents them.
*/
package distribution

import (
	"sort"
	"time"

	"github.com/taibuivan/harmonia/pkg/date"
	"github.com/taibuivan/harmonia/pkg/slice"
)

// Kind distinguishes the two deal families.
type Kind string

const (
	KindDistribution Kind = "distribution"
	KindArtistSales  Kind = "artist_sales"
)

// Status is the lifecycle state of a [Deal].
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// Deal is an agreement with one entity.
type Deal struct {
	ID        string     `json:"id"`
	Kind      Kind       `json:"kind"`
	EntityID  string     `json:"entity_id"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Territory string     `json:"territory"`
	StartDate date.Date  `json:"start_date"`
	EndDate   *date.Date `json:"end_date"`
	Platforms []string   `json:"platforms"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Filter narrows a deal listing.
type Filter struct {
	Kind     Kind
	Status   Status
	EntityID string
	Platform string
}

// # Revenue Shares

// RevenueShare is one dated rate line of a deal.
type RevenueShare struct {
	ID             string     `json:"id"`
	DealID         string     `json:"deal_id"`
	Label          string     `json:"label"`
	PartyEntityID  *string    `json:"party_entity_id"`
	RatePercentage float64    `json:"rate_percentage"`
	EffectiveFrom  date.Date  `json:"effective_from"`
	EffectiveTo    *date.Date `json:"effective_to"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Totals sums rate percentages per period.
type Totals struct {
	Past     float64 `json:"past"`
	Current  float64 `json:"current"`
	Upcoming float64 `json:"upcoming"`
}

// Timeline is the revenue-share lines of a deal grouped by period.
type Timeline struct {
	AsOf     date.Date       `json:"as_of"`
	Past     []*RevenueShare `json:"past"`
	Current  []*RevenueShare `json:"current"`
	Upcoming []*RevenueShare `json:"upcoming"`
	Totals   Totals          `json:"totals"`
}

/*
BucketRevenueShares groups lines relative to asOf.

  - past: ended before asOf
  - upcoming: starts after asOf
  - current: everything else (started on or before asOf, open or ending on or after it)

Each group is sorted by effective_from, then label.
*/
func BucketRevenueShares(items []*RevenueShare, asOf date.Date) Timeline {
	timeline := Timeline{
		AsOf:     asOf,
		Past:     []*RevenueShare{},
		Current:  []*RevenueShare{},
		Upcoming: []*RevenueShare{},
	}

	for _, item := range items {
		switch {
		case item.EffectiveTo != nil && item.EffectiveTo.Before(asOf):
			timeline.Past = append(timeline.Past, item)
		case item.EffectiveFrom.After(asOf):
			timeline.Upcoming = append(timeline.Upcoming, item)
		default:
			timeline.Current = append(timeline.Current, item)
		}
	}

	for _, group := range [][]*RevenueShare{timeline.Past, timeline.Current, timeline.Upcoming} {
		sortByStart(group)
	}

	timeline.Totals = Totals{
		Past:     sumRates(timeline.Past),
		Current:  sumRates(timeline.Current),
		Upcoming: sumRates(timeline.Upcoming),
	}
	return timeline
}

func sortByStart(items []*RevenueShare) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].EffectiveFrom.Equal(items[j].EffectiveFrom.Time) {
			return items[i].EffectiveFrom.Before(items[j].EffectiveFrom)
		}
		return items[i].Label < items[j].Label
	})
}

func sumRates(items []*RevenueShare) float64 {
	return slice.Reduce(items, 0.0, func(total float64, item *RevenueShare) float64 {
		return total + item.RatePercentage
	})
}

// Global field names for validation
const (
	FieldKind           = "kind"
	FieldEntityID       = "entity_id"
	FieldTitle          = "title"
	FieldStatus         = "status"
	FieldTerritory      = "territory"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldPlatforms      = "platforms"
	FieldLabel          = "label"
	FieldPartyEntityID  = "party_entity_id"
	FieldRatePercentage = "rate_percentage"
	FieldEffectiveFrom  = "effective_from"
	FieldEffectiveTo    = "effective_to"
)
