// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import "context"

// Repository defines the persistence contract for entities.
type Repository interface {

	/*
		List returns a filtered, paginated slice of entities and the total count.

		Returns:
		  - []*Entity: Matching non-deleted entities ordered by name
		  - int: Total matches
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Entity, int, error)

	// FindByID returns a non-deleted entity or NOT_FOUND.
	FindByID(context context.Context, id string) (*Entity, error)

	Create(context context.Context, entity *Entity) error
	Update(context context.Context, entity *Entity) error

	// Delete soft-deletes an entity.
	Delete(context context.Context, id string) error

	/*
		SetSealed stores the sealed bytes of one sensitive field.

		Parameters:
		  - sealed: []byte (nil clears the field)
	*/
	SetSealed(context context.Context, id string, field SensitiveField, sealed []byte) error

	// GetSealed returns the sealed bytes of one sensitive field, nil when unset.
	GetSealed(context context.Context, id string, field SensitiveField) ([]byte, error)
}
