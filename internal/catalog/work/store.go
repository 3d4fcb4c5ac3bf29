// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import "context"

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Work, int, error)
	FindByID(context context.Context, id string) (*Work, error)
	Create(context context.Context, work *Work) error
	Update(context context.Context, work *Work) error
	Delete(context context.Context, id string) error
}
