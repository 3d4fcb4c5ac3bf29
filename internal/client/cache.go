// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// cachedGet serves path from the cache or joins the single in-flight request for it.
func (c *Client) cachedGet(ctx context.Context, path string) ([]byte, error) {
	if cached, found := c.cache.Get(path); found {
		c.logger.DebugContext(ctx, "client_cache_hit", slog.String("path", path))
		return cached.([]byte), nil
	}

	flight := c.readGroup.DoChan(path, func() (any, error) {
		if cached, found := c.cache.Get(path); found {
			return cached, nil
		}
		generation := c.generation.Load()

		flightCtx, cancel := c.flightContext(ctx)
		defer cancel()

		raw, err := c.do(flightCtx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		if c.generation.Load() == generation {
			c.cache.Set(path, raw, gocache.DefaultExpiration)
		}
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.([]byte), nil
	}
}

// Invalidate drops every cached response whose path starts with one of the
// prefixes. No prefixes flushes the whole cache.
func (c *Client) Invalidate(prefixes ...string) {
	c.generation.Add(1)

	if len(prefixes) == 0 {
		c.cache.Flush()
		return
	}

	for key := range c.cache.Items() {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				c.cache.Delete(key)
				break
			}
		}
	}
	c.cache.DeleteExpired()
}
