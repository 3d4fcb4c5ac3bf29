// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credit

import "context"

// Repository defines the persistence contract for credits.
type Repository interface {
	ListBySubject(context context.Context, subjectType SubjectType, subjectID string) ([]*Credit, error)
	FindByID(context context.Context, id string) (*Credit, error)
	Create(context context.Context, credit *Credit) error
	Update(context context.Context, credit *Credit) error
	Delete(context context.Context, id string) error
}
