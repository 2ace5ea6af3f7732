package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zextras/carbonio-preview-go/internal/config"
	"github.com/zextras/carbonio-preview-go/internal/logger"
	"github.com/zextras/carbonio-preview-go/pkg/metrics"
	"github.com/zextras/carbonio-preview-go/pkg/preview"
)

// App wires configuration, logging and metrics around one preview client.
type App struct {
	cfg      *config.Config
	client   *preview.Client
	registry *prometheus.Registry
	log      logger.Logger
}

// New builds an App from config.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	registry := prometheus.NewRegistry()
	rec, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	client := preview.AtURL(cfg.PreviewURL,
		preview.WithTimeout(cfg.RequestTimeout),
		preview.WithLogger(log),
		preview.WithMetrics(rec),
	)
	log.InfoObj("preview client ready", "client_config", map[string]any{
		"preview_url":     client.BaseURL(),
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
	})

	return &App{cfg: cfg, client: client, registry: registry, log: log}, nil
}

// Request is one download or upload issued from the command line.
type Request struct {
	Kind   preview.Kind
	Mode   preview.Mode
	Params preview.Params
	// Source is the local file uploaded by Post.
	Source string
}

// Health returns an error when the service is not ready.
func (a *App) Health(ctx context.Context) error {
	if !a.client.HealthReady(ctx) {
		return fmt.Errorf("preview service at %s is not ready", a.client.BaseURL())
	}
	a.log.InfoObj("preview service ready", "preview_url", a.client.BaseURL())
	return nil
}

// Get downloads a preview or thumbnail into out.
func (a *App) Get(ctx context.Context, req Request, out io.Writer) error {
	if req.Params.OwnerID == "" {
		req.Params.OwnerID = a.cfg.OwnerID
	}
	blob, err := a.client.Get(ctx, req.Kind, req.Mode, req.Params)
	if err != nil {
		return err
	}
	return a.copyBlob(blob, out)
}

// Post uploads req.Source and writes the generated blob into out.
func (a *App) Post(ctx context.Context, req Request, out io.Writer) error {
	f, err := os.Open(req.Source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	blob, err := a.client.Post(ctx, req.Kind, req.Mode, f, req.Params, filepath.Base(req.Source))
	if err != nil {
		return err
	}
	return a.copyBlob(blob, out)
}

func (a *App) copyBlob(blob *preview.BlobResponse, out io.Writer) error {
	defer blob.Close()
	n, err := io.Copy(out, blob)
	if err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	a.log.InfoObj("blob received", "blob", map[string]any{
		"content_type": blob.ContentType(),
		"bytes":        n,
	})
	return nil
}
