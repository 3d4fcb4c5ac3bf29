// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package split

import "context"

// # Share Data Access

// Repository defines the persistence contract for shares.
type Repository interface {

	/*
		ListBucket returns every share of the bucket ordered by creation.

		Returns:
		  - []*Share: Possibly empty slice
		  - error: Database retrieval failures
	*/
	ListBucket(context context.Context, bucket Bucket) ([]*Share, error)

	/*
		FindByID returns a single share.

		Returns:
		  - *Share: The stored share
		  - error: NOT_FOUND if missing
	*/
	FindByID(context context.Context, id string) (*Share, error)

	// Create persists a new share. The ID must already be assigned.
	Create(context context.Context, share *Share) error

	// Update overwrites percentage, territory and lock flag of an existing share.
	Update(context context.Context, share *Share) error

	// Delete removes a share permanently.
	Delete(context context.Context, id string) error

	/*
		ReplaceBucket swaps the full content of a bucket in one transaction.

		Rows of the bucket absent from shares are removed; the rest are
		re-inserted with their IDs preserved.

		Returns:
		  - error: Transaction failures (nothing is written)
	*/
	ReplaceBucket(context context.Context, bucket Bucket, shares []*Share) error
}
