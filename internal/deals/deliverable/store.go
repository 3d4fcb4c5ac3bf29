// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliverable

import "context"

// Repository defines persistence for deliverables and packs.
type Repository interface {
	ListByDeal(ctx context.Context, dealID string) ([]*Deliverable, error)
	FindByID(ctx context.Context, id string) (*Deliverable, error)
	Create(ctx context.Context, d *Deliverable) error
	Update(ctx context.Context, d *Deliverable) error
	Delete(ctx context.Context, id string) error

	/*
		CreateMany inserts every deliverable or none of them.
	*/
	CreateMany(ctx context.Context, items []*Deliverable) error

	ListPacks(ctx context.Context) ([]*Pack, error)

	// FindPack returns the pack with its items ordered by position.
	FindPack(ctx context.Context, id string) (*Pack, error)

	// CreatePack inserts the pack and its items atomically.
	CreatePack(ctx context.Context, p *Pack) error
	DeletePack(ctx context.Context, id string) error
}
