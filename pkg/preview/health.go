package preview

import (
	"context"
	"io"
	"net/http"
	"time"
)

// HealthReady reports whether the service answers its readiness probe with
// 200. Every other outcome, including transport errors, is false.
func (c *Client) HealthReady(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ready := c.probe(ctx)
	if ctx.Err() != nil {
		// A cancelled probe says nothing about the service.
		return false
	}
	c.metrics.ObserveHealth(ready, time.Since(start))
	return ready
}

func (c *Client) probe(ctx context.Context) bool {
	url := c.baseURL + healthReadyPath
	resp, err := c.http.Get(ctx, url, nil)
	if err != nil {
		c.log.DebugObj("health probe failed", "error", err.Error())
		return false
	}
	body := resp.RawBody()
	_, _ = io.CopyN(io.Discard, body, maxDrain)
	_ = body.Close()

	if resp.StatusCode() != http.StatusOK {
		c.log.DebugObj("health probe not ready", "status", resp.StatusCode())
		return false
	}
	return true
}
