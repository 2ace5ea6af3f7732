package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zextras/carbonio-preview-go/internal/app"
	"github.com/zextras/carbonio-preview-go/internal/config"
	"github.com/zextras/carbonio-preview-go/internal/logger"
	"github.com/zextras/carbonio-preview-go/pkg/preview"
)

const usage = `usage:
  previewctl health
  previewctl watch
  previewctl get  <image|pdf|document> <preview|thumbnail> <file-id> [flags]
  previewctl post <image|pdf|document> <preview|thumbnail> <path> [flags]`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "previewctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	switch args[0] {
	case "health":
		return a.Health(ctx)
	case "watch":
		return a.Watch(ctx)
	case "get", "post":
		req, out, err := parseRequest(args[0], args[1:])
		if err != nil {
			return err
		}
		w, closeOut, err := openOutput(out)
		if err != nil {
			return err
		}
		defer closeOut()
		if args[0] == "get" {
			return a.Get(ctx, req, w)
		}
		return a.Post(ctx, req, w)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// parseRequest reads "<kind> <mode> <target> [flags]".
func parseRequest(cmd string, args []string) (app.Request, string, error) {
	var req app.Request
	if len(args) < 3 {
		return req, "", errors.New(usage)
	}

	kind, err := preview.ParseKind(args[0])
	if err != nil {
		return req, "", err
	}
	mode, err := preview.ParseMode(args[1])
	if err != nil {
		return req, "", err
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	var (
		p       preview.Params
		quality string
		format  string
		shape   string
		out     string
	)
	fs.StringVar(&p.Area, "area", "", "preview area, e.g. 200x200")
	fs.IntVar(&p.Version, "version", 1, "file version (get only)")
	fs.StringVar(&quality, "quality", "", "lowest|low|medium|high|highest")
	fs.StringVar(&format, "format", "", "jpeg|png|gif")
	fs.BoolVar(&p.Crop, "crop", false, "crop to the requested area")
	fs.StringVar(&shape, "shape", "", "rectangular|rounded (thumbnails)")
	fs.IntVar(&p.FirstPage, "first-page", 0, "first page (pdf, document)")
	fs.IntVar(&p.LastPage, "last-page", 0, "last page (pdf, document)")
	fs.StringVar(&p.OwnerID, "owner", "", "file owner id, defaults to OWNER_ID")
	fs.StringVar(&out, "o", "-", "output file, - for stdout")
	if err := fs.Parse(args[3:]); err != nil {
		return req, "", err
	}
	p.Quality = preview.Quality(quality)
	p.OutputFormat = preview.Format(format)
	p.Shape = preview.Shape(shape)

	req = app.Request{Kind: kind, Mode: mode}
	if cmd == "get" {
		p.FileID = args[2]
	} else {
		p.Version = 0
		req.Source = args[2]
	}
	req.Params = p
	return req, out, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
