// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package recording manages sound recordings (masters) of works.
package recording

import (
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/pkg/date"
)

// Recording is a fixed performance of a work.
type Recording struct {
	ID              string     `json:"id"`
	WorkID          *string    `json:"work_id"`
	SongID          *string    `json:"song_id"`
	Title           string     `json:"title"`
	ISRC            *string    `json:"isrc"`
	Version         *string    `json:"version"`
	DurationSeconds *int       `json:"duration_seconds"`
	RecordedOn      *date.Date `json:"recorded_on"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}

// Detail is a recording with its master ownership and contributors.
type Detail struct {
	*Recording
	MasterSplits *split.Breakdown `json:"master_splits"`
	Credits      []*credit.Credit `json:"credits"`
}

type Filter struct {
	WorkID string
	SongID string
	Query  string
}

var (
	isrcSeparators = strings.NewReplacer("-", "", " ", "")
	isrcPattern    = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}[0-9]{7}$`)
)

// NormalizeISRC converts "US-S1Z-99-00001" style input to the 12 character
// form "USS1Z9900001".
func NormalizeISRC(value string) (string, bool) {
	compact := strings.ToUpper(isrcSeparators.Replace(value))
	if !isrcPattern.MatchString(compact) {
		return "", false
	}
	return compact, true
}

// Global field names for validation
const (
	FieldWorkID          = "work_id"
	FieldSongID          = "song_id"
	FieldTitle           = "title"
	FieldISRC            = "isrc"
	FieldVersion         = "version"
	FieldDurationSeconds = "duration_seconds"
)
