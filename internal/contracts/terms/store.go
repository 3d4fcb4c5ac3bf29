// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terms

import "context"

// Repository persists one terms draft per deal.
type Repository interface {
	Find(ctx context.Context, dealID string) (*Draft, error)

	// Insert stores the first draft of a deal at version 1.
	Insert(ctx context.Context, draft *Draft) error

	/*
		UpdateVersioned overwrites the draft only if its stored version equals
		expected, then bumps the version.

		Returns false when no row matched.
	*/
	UpdateVersioned(ctx context.Context, draft *Draft, expected int) (bool, error)

	Delete(ctx context.Context, dealID string) error
}
