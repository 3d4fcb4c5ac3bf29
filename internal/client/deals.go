// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/pkg/date"
)

// MaxParallelCreates bounds the requests issued at once by fan-out helpers.
const MaxParallelCreates = 4

// # Deals

// GetDeal returns one deal.
func (c *Client) GetDeal(ctx context.Context, dealID string) (*distribution.Deal, error) {
	var deal distribution.Deal
	if err := c.get(ctx, "/deals/"+url.PathEscape(dealID), &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

// RevenueTimeline buckets the revenue shares of a deal around asOf.
func (c *Client) RevenueTimeline(ctx context.Context, dealID string, asOf date.Date) (*distribution.Timeline, error) {
	var timeline distribution.Timeline
	path := "/deals/" + url.PathEscape(dealID) + "/revenue-shares?as_of=" + asOf.String()
	if err := c.get(ctx, path, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}

// # Deliverables

// DeliverableInput is the create payload for a single deliverable.
type DeliverableInput struct {
	DealID  string             `json:"deal_id"`
	Name    string             `json:"name"`
	Kind    deliverable.Kind   `json:"kind"`
	DueDate *date.Date         `json:"due_date,omitempty"`
	Status  deliverable.Status `json:"status,omitempty"`
	Notes   *string            `json:"notes,omitempty"`
}

func deliverablesPath(dealID string) string {
	return "/deliverables/?deal_id=" + url.QueryEscape(dealID)
}

// Deliverables lists the deliverables of a deal.
func (c *Client) Deliverables(ctx context.Context, dealID string) ([]*deliverable.Deliverable, error) {
	var items []*deliverable.Deliverable
	if err := c.get(ctx, deliverablesPath(dealID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateDeliverable adds one deliverable to a deal.
func (c *Client) CreateDeliverable(ctx context.Context, input DeliverableInput) (*deliverable.Deliverable, error) {
	var created deliverable.Deliverable
	if err := c.mutate(ctx, http.MethodPost, "/deliverables/", input, &created, deliverablesPath(input.DealID)); err != nil {
		return nil, err
	}
	return &created, nil
}

// # Packs

// Packs lists every deliverable pack with its items.
func (c *Client) Packs(ctx context.Context) ([]*deliverable.Pack, error) {
	var packs []*deliverable.Pack
	if err := c.get(ctx, "/deliverables/packs", &packs); err != nil {
		return nil, err
	}
	return packs, nil
}

// GetPack returns one pack with its items.
func (c *Client) GetPack(ctx context.Context, packID string) (*deliverable.Pack, error) {
	var pack deliverable.Pack
	if err := c.get(ctx, "/deliverables/packs/"+url.PathEscape(packID), &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

// ApplyPackAtomic applies a pack server side in one transaction: either every
// item becomes a deliverable or none does.
func (c *Client) ApplyPackAtomic(ctx context.Context, packID string, input deliverable.ApplyInput) ([]*deliverable.Deliverable, error) {
	var created []*deliverable.Deliverable
	path := "/deliverables/packs/" + url.PathEscape(packID) + "/apply"
	if err := c.mutate(ctx, http.MethodPost, path, input, &created, deliverablesPath(input.DealID)); err != nil {
		return nil, err
	}
	return created, nil
}

// ItemResult is the outcome of creating one deliverable during a fan-out.
type ItemResult struct {
	Input       DeliverableInput
	Deliverable *deliverable.Deliverable
	Err         error
}

// Failed counts the results that carry an error.
func Failed(results []ItemResult) int {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}

/*
ApplyPack expands a pack for a deal and creates every item with its own
request, in parallel.

Description: One failed item does not stop the others. Each item reports its
own outcome in pack order. Due dates are offsets from start.

Returns:
  - []ItemResult: one entry per pack item
  - error: only when the pack itself cannot be loaded
*/
func (c *Client) ApplyPack(ctx context.Context, packID, dealID string, start date.Date) ([]ItemResult, error) {
	pack, err := c.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}

	inputs := make([]DeliverableInput, 0, len(pack.Items))
	for _, expanded := range pack.Expand(dealID, start) {
		inputs = append(inputs, DeliverableInput{
			DealID:  expanded.DealID,
			Name:    expanded.Name,
			Kind:    expanded.Kind,
			DueDate: expanded.DueDate,
			Status:  expanded.Status,
			Notes:   expanded.Notes,
		})
	}

	return c.CreateDeliverables(ctx, inputs), nil
}

// CreateDeliverables creates each input with its own request, in parallel.
// Results keep the input order.
func (c *Client) CreateDeliverables(ctx context.Context, inputs []DeliverableInput) []ItemResult {
	results := make([]ItemResult, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(MaxParallelCreates)

	for i, input := range inputs {
		results[i].Input = input
		group.Go(func() error {
			created, err := c.CreateDeliverable(groupCtx, input)
			results[i].Deliverable = created
			results[i].Err = err
			return nil
		})
	}

	_ = group.Wait()
	return results
}
