// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package terms models the year-by-year commission table negotiated on a deal.

A [Terms] value holds one row of rates per contract year across seven
revenue categories, plus a per-category enable toggle. Drafts are saved per
deal with an optimistic version so concurrent editors cannot silently
overwrite each other.
*/
package terms

import (
	"fmt"
	"time"

	"github.com/taibuivan/harmonia/internal/platform/validate"
)

// Category is one revenue stream a rate applies to.
type Category string

const (
	CategoryRecordedMusic     Category = "recorded_music"
	CategoryPublishing        Category = "publishing"
	CategoryLive              Category = "live"
	CategoryMerchandise       Category = "merchandise"
	CategorySync              Category = "sync"
	CategoryBrandPartnerships Category = "brand_partnerships"
	CategoryDigitalContent    Category = "digital_content"
)

// NumCategories is the width of a [YearRates] row.
const NumCategories = 7

// Categories lists every [Category] in column order.
var Categories = [NumCategories]Category{
	CategoryRecordedMusic,
	CategoryPublishing,
	CategoryLive,
	CategoryMerchandise,
	CategorySync,
	CategoryBrandPartnerships,
	CategoryDigitalContent,
}

// Duration bounds.
const (
	MinYears = 1
	MaxYears = 20
)

// Index returns the column of c, or -1 when c is unknown.
func (c Category) Index() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return -1
}

// YearRates is one contract year of rates, indexed like [Categories].
type YearRates [NumCategories]float64

// Terms is the editable commission table.
type Terms struct {
	DurationYears int               `json:"duration_years"`
	Enabled       map[Category]bool `json:"enabled"`
	Rates         []YearRates       `json:"rates"`
}

// New returns terms of the given length with every category enabled and zero rates.
func New(years int) *Terms {
	t := &Terms{
		DurationYears: years,
		Enabled:       make(map[Category]bool, NumCategories),
		Rates:         make([]YearRates, years),
	}
	for _, c := range Categories {
		t.Enabled[c] = true
	}
	return t
}

/*
Resize changes the contract length to n years.

Growing clones the last year's rates into every new year. Shrinking drops
trailing years. Resizing an empty table fills it with zero rows.
*/
func (t *Terms) Resize(n int) error {
	if n < MinYears || n > MaxYears {
		return validate.RequiredError(FieldDurationYears, fmt.Sprintf("Must be between %d and %d", MinYears, MaxYears))
	}

	switch {
	case n < len(t.Rates):
		t.Rates = t.Rates[:n:n]
	case n > len(t.Rates):
		var last YearRates
		if len(t.Rates) > 0 {
			last = t.Rates[len(t.Rates)-1]
		}
		for len(t.Rates) < n {
			t.Rates = append(t.Rates, last)
		}
	}

	t.DurationYears = n
	return nil
}

// CopyFirstYear overwrites every later year with year 1.
func (t *Terms) CopyFirstYear() {
	if len(t.Rates) == 0 {
		return
	}
	for i := 1; i < len(t.Rates); i++ {
		t.Rates[i] = t.Rates[0]
	}
}

// SetRate sets the rate of category for a 1-based year.
func (t *Terms) SetRate(year int, category Category, rate float64) error {
	validator := &validate.Validator{}
	validator.Range(FieldYear, year, 1, len(t.Rates))
	validator.Custom(FieldCategory, category.Index() < 0, "Unknown category")
	validator.Percentage(FieldRate, rate)
	if err := validator.Err(); err != nil {
		return err
	}

	t.Rates[year-1][category.Index()] = rate
	return nil
}

// Rate returns the rate of category for a 1-based year.
func (t *Terms) Rate(year int, category Category) float64 {
	index := category.Index()
	if year < 1 || year > len(t.Rates) || index < 0 {
		return 0
	}
	return t.Rates[year-1][index]
}

// Normalize fills toggles missing from Enabled with false.
func (t *Terms) Normalize() {
	if t.Enabled == nil {
		t.Enabled = make(map[Category]bool, NumCategories)
	}
	for _, c := range Categories {
		if _, ok := t.Enabled[c]; !ok {
			t.Enabled[c] = false
		}
	}
	if t.Rates == nil {
		t.Rates = []YearRates{}
	}
}

// Validate reports every structural or range problem at once.
func (t *Terms) Validate() error {
	validator := &validate.Validator{}
	validator.Range(FieldDurationYears, t.DurationYears, MinYears, MaxYears)
	validator.Custom(FieldRates, len(t.Rates) != t.DurationYears, "Must have one row per contract year")

	for category := range t.Enabled {
		validator.Custom(FieldEnabled, category.Index() < 0, fmt.Sprintf("Unknown category %q", category))
	}

	for year, row := range t.Rates {
		for index, rate := range row {
			validator.Percentage(fmt.Sprintf("%s[%d].%s", FieldRates, year+1, Categories[index]), rate)
		}
	}
	return validator.Err()
}

// # Drafts

// Draft is the saved working copy of a deal's terms.
type Draft struct {
	DealID string `json:"deal_id"`
	Terms
	Version   int       `json:"version"`
	UpdatedBy *string   `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveInput is the body of a draft save. Version is the version last read,
// or 0 when creating the first draft.
type SaveInput struct {
	Terms
	Version int `json:"version"`
}

// Global field names for validation
const (
	FieldDurationYears = "duration_years"
	FieldEnabled       = "enabled"
	FieldRates         = "rates"
	FieldYear          = "year"
	FieldCategory      = "category"
	FieldRate          = "rate"
	FieldVersion       = "version"
)
