// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import "context"

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Template, int, error)
	FindByID(context context.Context, id string) (*Template, error)

	// SlugExists also counts soft-deleted templates; slugs are never reused.
	SlugExists(context context.Context, slug string) (bool, error)
	Create(context context.Context, template *Template) error
	Update(context context.Context, template *Template) error
	Delete(context context.Context, id string) error
}
