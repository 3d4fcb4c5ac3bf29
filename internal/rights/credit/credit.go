// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package credit records who contributed to a work or recording and in which
// role. Credits are informational and independent of ownership splits.
package credit

import "time"

// SubjectType is the catalog object a credit is attached to.
type SubjectType string

const (
	SubjectWork      SubjectType = "work"
	SubjectRecording SubjectType = "recording"
)

// Role is the contribution being credited.
type Role string

const (
	RoleComposer          Role = "composer"
	RoleLyricist          Role = "lyricist"
	RoleSongwriter        Role = "songwriter"
	RoleArranger          Role = "arranger"
	RoleProducer          Role = "producer"
	RoleCoProducer        Role = "co_producer"
	RoleExecutiveProducer Role = "executive_producer"
	RoleMixingEngineer    Role = "mixing_engineer"
	RoleMasteringEngineer Role = "mastering_engineer"
	RoleRecordingEngineer Role = "recording_engineer"
	RolePerformer         Role = "performer"
	RoleFeaturedArtist    Role = "featured_artist"
	RoleVocalist          Role = "vocalist"
	RoleMusician          Role = "musician"
	RoleRemixer           Role = "remixer"
)

// Roles lists every accepted [Role] in display order.
var Roles = []Role{
	RoleComposer, RoleLyricist, RoleSongwriter, RoleArranger,
	RoleProducer, RoleCoProducer, RoleExecutiveProducer,
	RoleMixingEngineer, RoleMasteringEngineer, RoleRecordingEngineer,
	RolePerformer, RoleFeaturedArtist, RoleVocalist, RoleMusician, RoleRemixer,
}

// ShareKind qualifies the optional compensation attached to a credit.
type ShareKind string

const (
	ShareKindPercentage ShareKind = "percentage"
	ShareKindPoints     ShareKind = "points"
	ShareKindFlatFee    ShareKind = "flat_fee"
)

// Credit is a named contribution. The same entity may hold several credits,
// even with the same role.
type Credit struct {
	ID          string      `json:"id"`
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   string      `json:"subject_id"`
	EntityID    string      `json:"entity_id"`
	Role        Role        `json:"role"`
	CreditedAs  *string     `json:"credited_as"`
	ShareKind   *ShareKind  `json:"share_kind"`
	ShareValue  *float64    `json:"share_value"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Input is the writable subset of a [Credit].
type Input struct {
	EntityID   string     `json:"entity_id"`
	Role       Role       `json:"role"`
	CreditedAs *string    `json:"credited_as"`
	ShareKind  *ShareKind `json:"share_kind"`
	ShareValue *float64   `json:"share_value"`
}

// Global field names for validation
const (
	FieldSubjectType = "subject_type"
	FieldSubjectID   = "subject_id"
	FieldEntityID    = "entity_id"
	FieldRole        = "role"
	FieldCreditedAs  = "credited_as"
	FieldShareKind   = "share_kind"
	FieldShareValue  = "share_value"
)
