package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Watch probes service readiness every probe interval and serves metrics on
// the configured address until ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.MetricsAddr)
	if err != nil {
		return err
	}
	return a.watch(ctx, ln)
}

func (a *App) watch(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.ErrorObj("metrics server shutdown failed", "error", err)
		}
	}()

	a.log.InfoObj("watch loop starting", "watch_state", map[string]any{
		"preview_url":    a.client.BaseURL(),
		"probe_interval": a.cfg.ProbeInterval.String(),
		"metrics_addr":   ln.Addr().String(),
	})

	a.probeOnce(ctx)

	ticker := time.NewTicker(a.cfg.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ticker.C:
			a.probeOnce(ctx)
		}
	}
}

func (a *App) probeOnce(ctx context.Context) {
	if a.client.HealthReady(ctx) {
		a.log.DebugObj("preview service ready", "preview_url", a.client.BaseURL())
		return
	}
	if ctx.Err() != nil {
		return
	}
	a.log.WarnObj("preview service not ready", "preview_url", a.client.BaseURL())
}
