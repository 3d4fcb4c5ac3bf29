// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"

	"github.com/taibuivan/harmonia/internal/users/auth"
)

// Login opens a cookie session. Every cached response is dropped since
// visibility depends on the caller.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	var session auth.Session
	input := auth.LoginInput{Email: email, Password: password}
	if err := c.mutate(ctx, http.MethodPost, "/auth/login", input, &session); err != nil {
		return nil, err
	}
	c.Invalidate()
	return &session, nil
}

// Logout clears the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.mutate(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Me returns the signed-in staff member. It is never cached.
func (c *Client) Me(ctx context.Context) (*auth.Staff, error) {
	raw, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var staff auth.Staff
	if err := decodeInto(raw, &staff, nil); err != nil {
		return nil, err
	}
	return &staff, nil
}
