// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import "context"

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Song, int, error)
	FindByID(context context.Context, id string) (*Song, error)
	FindBySlug(context context.Context, slug string) (*Song, error)
	SlugExists(context context.Context, slug string) (bool, error)
	Create(context context.Context, song *Song) error
	Update(context context.Context, song *Song) error
	Delete(context context.Context, id string) error
}
