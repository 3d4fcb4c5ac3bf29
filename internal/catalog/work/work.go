// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package work manages musical works: the composition, as opposed to any
recording of it. Works carry writer and publisher splits and credits.
*/
package work

import (
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
)

// Work is a musical composition.
type Work struct {
	ID             string     `json:"id"`
	SongID         *string    `json:"song_id"`
	Title          string     `json:"title"`
	ISWC           *string    `json:"iswc"`
	AlternateTitle *string    `json:"alternate_title"`
	Language       *string    `json:"language"`
	Genre          *string    `json:"genre"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}

// Detail is a work with its ownership and contributors.
type Detail struct {
	*Work
	WriterSplits    *split.Breakdown `json:"writer_splits"`
	PublisherSplits *split.Breakdown `json:"publisher_splits"`
	Credits         []*credit.Credit `json:"credits"`
}

// Filter holds the parameters for a paginated work search.
type Filter struct {
	SongID string
	Query  string // match on title, alternate title and ISWC
}

// # View Mode

// ViewMode is the screen a work is requested for.
type ViewMode string

const (
	ViewDetails ViewMode = "details"
	ViewCreate  ViewMode = "create"
	ViewEdit    ViewMode = "edit"
)

// ParseViewMode maps a query value to a [ViewMode]; anything unknown is
// [ViewDetails].
func ParseViewMode(value string) ViewMode {
	switch mode := ViewMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ViewCreate, ViewEdit:
		return mode
	default:
		return ViewDetails
	}
}

// ViewMeta is echoed in the meta block of a work response.
type ViewMeta struct {
	View    ViewMode `json:"view"`
	CanEdit bool     `json:"can_edit"`
}

// # ISWC

var (
	iswcSeparators = strings.NewReplacer("-", "", ".", "", " ", "")
	iswcPattern    = regexp.MustCompile(`^T[0-9]{10}$`)
)

/*
NormalizeISWC converts "T-034.524.680-1" style input to its compact form
"T0345246801" and verifies the check digit.

Returns:
  - string: The compact ISWC
  - bool: false when the value is malformed or the check digit is wrong
*/
func NormalizeISWC(value string) (string, bool) {
	compact := strings.ToUpper(iswcSeparators.Replace(value))
	if !iswcPattern.MatchString(compact) {
		return "", false
	}

	sum := 1
	for i := 1; i <= 9; i++ {
		sum += i * int(compact[i]-'0')
	}
	check := (10 - sum%10) % 10

	if int(compact[10]-'0') != check {
		return "", false
	}
	return compact, true
}

// Global field names for validation
const (
	FieldSongID         = "song_id"
	FieldTitle          = "title"
	FieldISWC           = "iswc"
	FieldAlternateTitle = "alternate_title"
	FieldLanguage       = "language"
	FieldGenre          = "genre"
	FieldNotes          = "notes"
)
