// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entity manages the parties of the catalog: artists, labels and
publishers. Every share, credit and deal points at an entity.

Tax identifiers and bank accounts are stored sealed. They never appear in
regular reads; staff reveal them one field at a time.
*/
package entity

import "time"

// Kind classifies an [Entity].
type Kind string

const (
	KindArtist    Kind = "artist"
	KindLabel     Kind = "label"
	KindPublisher Kind = "publisher"
)

// Entity is a party that can own rights or sign deals.
type Entity struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	Name           string     `json:"name"`
	LegalName      *string    `json:"legal_name"`
	Country        *string    `json:"country"`
	IPI            *string    `json:"ipi"`
	Email          *string    `json:"email"`
	Notes          *string    `json:"notes"`
	HasTaxID       bool       `json:"has_tax_id"`
	HasBankAccount bool       `json:"has_bank_account"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}

// Filter narrows an entity listing.
type Filter struct {
	Kind  Kind
	Query string // case-insensitive match on name and legal name
}

// # Sensitive Fields

// SensitiveField names a sealed column.
type SensitiveField string

const (
	FieldTaxID       SensitiveField = "tax_id"
	FieldBankAccount SensitiveField = "bank_account"
)

// Valid reports whether f names a sealed column.
func (f SensitiveField) Valid() bool {
	return f == FieldTaxID || f == FieldBankAccount
}

// SensitiveInput sets or clears sealed fields. A nil pointer leaves the field
// untouched; an empty string clears it.
type SensitiveInput struct {
	TaxID       *string `json:"tax_id"`
	BankAccount *string `json:"bank_account"`
}

// Revealed is the plaintext of one sealed field.
type Revealed struct {
	Field SensitiveField `json:"field"`
	Value string         `json:"value"`
}

// Global field names for validation
const (
	FieldKind      = "kind"
	FieldName      = "name"
	FieldLegalName = "legal_name"
	FieldCountry   = "country"
	FieldIPI       = "ipi"
	FieldEmail     = "email"
	FieldNotes     = "notes"
)
