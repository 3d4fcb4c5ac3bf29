// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/harmonia/internal/platform/constants"
)

const csrfFlightKey = "csrf"

/*
EnsureCSRFToken returns the token the next unsafe request must echo.

Description: The csrftoken cookie in the jar is the source of truth. When it is
missing, exactly one GET /api/v1/csrf/ is in flight at a time and every
concurrent caller receives its result. A caller whose context ends stops
waiting without cancelling the fetch for the others.

Returns:
  - string: the token
  - error: transport or API failure of the shared fetch
*/
func (c *Client) EnsureCSRFToken(ctx context.Context) (string, error) {
	if token := c.csrfCookie(); token != "" {
		return token, nil
	}

	flight := c.csrfGroup.DoChan(csrfFlightKey, func() (any, error) {
		// A fetch that finished between the check above and DoChan already set the cookie.
		if token := c.csrfCookie(); token != "" {
			return token, nil
		}
		flightCtx, cancel := c.flightContext(ctx)
		defer cancel()
		return c.fetchCSRFToken(flightCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return "", result.Err
		}
		c.logger.DebugContext(ctx, "csrf_token_ready", slog.Bool("shared", result.Shared))
		return result.Val.(string), nil
	}
}

func (c *Client) fetchCSRFToken(ctx context.Context) (string, error) {
	raw, err := c.send(ctx, http.MethodGet, "/csrf/", nil)
	if err != nil {
		return "", err
	}

	var body struct {
		Token string `json:"csrf_token"`
	}
	if err := decodeInto(raw, &body, nil); err != nil {
		return "", err
	}

	// Prefer the cookie so header and cookie always match.
	if token := c.csrfCookie(); token != "" {
		return token, nil
	}
	return body.Token, nil
}

func (c *Client) csrfCookie() string {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == constants.CSRFCookieName {
			return cookie.Value
		}
	}
	return ""
}

// dropCSRFToken expires the jar cookie so the next unsafe request fetches a new one.
func (c *Client) dropCSRFToken() {
	c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   constants.CSRFCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
}
