// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package distribution

import "context"

// Repository defines the persistence contract for deals and revenue shares.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Deal, int, error)
	FindByID(context context.Context, id string) (*Deal, error)
	Create(context context.Context, deal *Deal) error
	Update(context context.Context, deal *Deal) error

	// Delete soft-deletes a deal; its revenue shares stay for audit.
	Delete(context context.Context, id string) error

	ListRevenueShares(context context.Context, dealID string) ([]*RevenueShare, error)
	CreateRevenueShare(context context.Context, share *RevenueShare) error
	DeleteRevenueShare(context context.Context, dealID, id string) error
}
