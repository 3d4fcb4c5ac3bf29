// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package split manages ownership shares of works and recordings.

A share belongs to exactly one bucket, identified by (subject type, subject id,
right type). The shares of a bucket are expected to add up to 100%, but the
catalog tolerates incomplete buckets while deals are negotiated: [Summarize]
reports the deviation instead of rejecting it.

Valid buckets:

  - work      → writer, publisher
  - recording → master
*/
package split

import (
	"math"
	"time"

	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/pkg/slice"
)

// # Bucket Identity

// SubjectType is the kind of catalog object a share is attached to.
type SubjectType string

const (
	SubjectWork      SubjectType = "work"
	SubjectRecording SubjectType = "recording"
)

// RightType is the kind of right a share grants.
type RightType string

const (
	RightWriter    RightType = "writer"
	RightPublisher RightType = "publisher"
	RightMaster    RightType = "master"
)

// Bucket identifies the set of shares that must add up to 100%.
type Bucket struct {
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   string      `json:"subject_id"`
	RightType   RightType   `json:"right_type"`
}

// Valid reports whether the subject type accepts the right type.
func (b Bucket) Valid() bool {
	switch b.SubjectType {
	case SubjectWork:
		return b.RightType == RightWriter || b.RightType == RightPublisher
	case SubjectRecording:
		return b.RightType == RightMaster
	}
	return false
}

// # Domain Model

// Share is one entity's percentage of a bucket.
type Share struct {
	ID              string      `json:"id"`
	SubjectType     SubjectType `json:"subject_type"`
	SubjectID       string      `json:"subject_id"`
	RightType       RightType   `json:"right_type"`
	EntityID        string      `json:"entity_id"`
	SharePercentage float64     `json:"share_percentage"`
	Territory       string      `json:"territory"`
	Locked          bool        `json:"locked"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Bucket returns the bucket the share belongs to.
func (s *Share) Bucket() Bucket {
	return Bucket{SubjectType: s.SubjectType, SubjectID: s.SubjectID, RightType: s.RightType}
}

// ShareInput is the writable subset of a [Share].
//
// ID is only read by bucket replacement, where it marks an existing share
// that must be kept.
type ShareInput struct {
	ID              string   `json:"id,omitempty"`
	EntityID        string   `json:"entity_id"`
	SharePercentage *float64 `json:"share_percentage"`
	Territory       *string  `json:"territory"`
	Locked          *bool    `json:"locked"`
}

// Breakdown is a bucket together with its shares and completeness summary.
// Work and recording details embed one per right type.
type Breakdown struct {
	Bucket
	Shares  []*Share `json:"shares"`
	Summary Summary  `json:"summary"`
}

// # Completeness

// Status is the badge shown next to a bucket.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
)

// Summary describes how far a bucket is from 100%.
type Summary struct {
	Total      float64 `json:"total"`
	IsComplete bool    `json:"is_complete"`
	Delta      float64 `json:"delta"`
	Status     Status  `json:"status"`
	Count      int     `json:"count"`
}

// Summarize totals the shares of one bucket.
//
// A bucket is complete when the raw sum is within [constants.SplitTolerance]
// of 100. Total and Delta are rounded to two decimals for display; Delta is
// signed (negative means shares are still missing).
func Summarize(shares []*Share) Summary {
	sum := slice.Reduce(shares, 0.0, func(total float64, share *Share) float64 {
		return total + share.SharePercentage
	})

	complete := math.Abs(sum-100) < constants.SplitTolerance
	total := RoundPercentage(sum)
	delta := RoundPercentage(sum - 100)

	status := StatusWarning
	if complete {
		status = StatusSuccess
	}

	return Summary{
		Total:      total,
		IsComplete: complete,
		Delta:      delta,
		Status:     status,
		Count:      len(shares),
	}
}

// RoundPercentage rounds to the two decimals a share percentage is stored with.
func RoundPercentage(v float64) float64 {
	return math.Round(v*100) / 100
}

// # Validation Fields

const (
	FieldSubjectType     = "subject_type"
	FieldSubjectID       = "subject_id"
	FieldRightType       = "right_type"
	FieldEntityID        = "entity_id"
	FieldSharePercentage = "share_percentage"
	FieldTerritory       = "territory"
	FieldShares          = "shares"
)
