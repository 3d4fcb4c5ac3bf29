// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taibuivan/harmonia/internal/contracts/template"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
)

func draftPath(dealID string) string {
	return "/contracts/" + url.PathEscape(dealID) + "/terms/draft"
}

// GetTermsDraft returns the saved terms draft of a deal, or nil when the deal
// has none yet.
func (c *Client) GetTermsDraft(ctx context.Context, dealID string) (*terms.Draft, error) {
	var draft terms.Draft
	err := c.get(ctx, draftPath(dealID), &draft)
	if NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// SaveTermsDraft stores the draft. Version must be the version last read, or
// zero for a first save; a stale version is a 409 [*APIError].
func (c *Client) SaveTermsDraft(ctx context.Context, dealID string, input terms.SaveInput) (*terms.Draft, error) {
	var saved terms.Draft
	if err := c.mutate(ctx, http.MethodPut, draftPath(dealID), input, &saved, draftPath(dealID)); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DiscardTermsDraft deletes the draft of a deal.
func (c *Client) DiscardTermsDraft(ctx context.Context, dealID string) error {
	return c.mutate(ctx, http.MethodDelete, draftPath(dealID), nil, nil, draftPath(dealID))
}

// GenerateContract renders a template against a deal.
func (c *Client) GenerateContract(ctx context.Context, templateID, dealID string) (*template.Generated, error) {
	var generated template.Generated
	body := template.GenerateInput{DealID: dealID}
	if err := c.mutate(ctx, http.MethodPost, "/templates/"+url.PathEscape(templateID)+"/generate", body, &generated); err != nil {
		return nil, err
	}
	return &generated, nil
}
