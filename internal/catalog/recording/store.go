// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recording

import "context"

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Recording, int, error)
	FindByID(context context.Context, id string) (*Recording, error)
	Create(context context.Context, recording *Recording) error
	Update(context context.Context, recording *Recording) error
	Delete(context context.Context, id string) error
}
