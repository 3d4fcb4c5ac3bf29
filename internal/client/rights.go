// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
)

func bucketPath(bucket split.Bucket) string {
	return "/splits/" + url.PathEscape(string(bucket.SubjectType)) + "/" +
		url.PathEscape(bucket.SubjectID) + "/" + url.PathEscape(string(bucket.RightType))
}

// subjectPrefixes are the cached paths that embed data of one work or recording.
func subjectPrefixes(subjectType, subjectID string) []string {
	subject := url.PathEscape(subjectType) + "/" + url.PathEscape(subjectID)
	return []string{
		"/splits/" + subject,
		"/credits/" + subject,
		"/" + url.PathEscape(subjectType) + "s/" + url.PathEscape(subjectID),
	}
}

// # Splits

// Splits returns the shares of one bucket with their summary.
func (c *Client) Splits(ctx context.Context, bucket split.Bucket) (*split.Breakdown, error) {
	breakdown := &split.Breakdown{}
	if err := c.getWithMeta(ctx, bucketPath(bucket), &breakdown.Shares, &breakdown.Summary); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// SplitSummary returns only the completeness summary of one bucket.
func (c *Client) SplitSummary(ctx context.Context, bucket split.Bucket) (*split.Summary, error) {
	var summary split.Summary
	if err := c.get(ctx, bucketPath(bucket)+"/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ReplaceSplits swaps the whole bucket for shares.
func (c *Client) ReplaceSplits(ctx context.Context, bucket split.Bucket, shares []split.ShareInput) ([]*split.Share, error) {
	var replaced []*split.Share
	body := map[string][]split.ShareInput{"shares": shares}
	prefixes := subjectPrefixes(string(bucket.SubjectType), bucket.SubjectID)
	if err := c.mutate(ctx, http.MethodPut, bucketPath(bucket), body, &replaced, prefixes...); err != nil {
		return nil, err
	}
	return replaced, nil
}

// # Credits

// Credits lists the credits of one work or recording.
func (c *Client) Credits(ctx context.Context, subjectType credit.SubjectType, subjectID string) ([]*credit.Credit, error) {
	var credits []*credit.Credit
	path := "/credits/" + url.PathEscape(string(subjectType)) + "/" + url.PathEscape(subjectID)
	if err := c.get(ctx, path, &credits); err != nil {
		return nil, err
	}
	return credits, nil
}

// DeleteCredit removes one credit. A missing credit is a 404 [*APIError] and
// leaves the cache untouched.
func (c *Client) DeleteCredit(ctx context.Context, creditID string) error {
	return c.mutate(ctx, http.MethodDelete, "/credits/"+url.PathEscape(creditID), nil, nil, "/credits", "/works", "/recordings")
}
