// Package preview is a client for the preview service. It builds preview and
// thumbnail requests for images, pdfs and documents and maps the service's
// status codes to typed errors.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zextras/carbonio-preview-go/pkg/httpclient"
)

const (
	previewPrefix     = "/preview"
	healthReadyPath   = "/health/ready/"
	fileOwnerIDHeader = "FileOwnerId"
	uploadField       = "file"
	uploadContentType = "application/octet-stream"
)

// Client talks to one preview service. It is immutable and safe for
// concurrent use.
type Client struct {
	baseURL    string
	previewURL string
	http       httpclient.Client
	log        Logger
	metrics    Recorder
}

// Option customizes a Client at construction.
type Option func(*options)

type options struct {
	http    httpclient.Client
	timeout time.Duration
	log     Logger
	metrics Recorder
}

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(c httpclient.Client) Option { return func(o *options) { o.http = c } }

// WithTimeout bounds every request made by the default transport.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithLogger sets where request and failure logs go; nil discards them.
func WithLogger(l Logger) Option { return func(o *options) { o.log = l } }

// WithMetrics reports every exchange and health probe to r.
func WithMetrics(r Recorder) Option { return func(o *options) { o.metrics = r } }

// AtURL returns a client bound to baseURL, e.g. "http://127.0.0.1:10000".
func AtURL(baseURL string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.http == nil {
		o.http = httpclient.NewRestyClient(o.timeout)
	}
	if o.metrics == nil {
		o.metrics = noopRecorder{}
	}

	base := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL:    base,
		previewURL: base + previewPrefix,
		http:       o.http,
		log:        ensureLogger(o.log),
		metrics:    o.metrics,
	}
}

// AtHost returns a client bound to scheme://host:port.
func AtHost(scheme, host string, port int, opts ...Option) *Client {
	return AtURL(scheme+"://"+host+":"+strconv.Itoa(port), opts...)
}

// BaseURL is the service root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Get downloads a preview or thumbnail the service already knows about.
// The query must carry an owner id.
func (c *Client) Get(ctx context.Context, kind Kind, mode Mode, query Query) (*BlobResponse, error) {
	op := opName(http.MethodGet, kind, mode)
	if err := checkTarget(kind, mode); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if query == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingOwnerID)
	}
	owner, ok := query.FileOwnerID()
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingOwnerID)
	}
	if err := validate(query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	url := c.previewURL + BuildPath(kind, mode, query)
	return c.exchange(ctx, op, kind, mode, http.MethodGet, url, func(ctx context.Context) (httpclient.Response, error) {
		return c.http.Get(ctx, url, map[string]string{fileOwnerIDHeader: owner})
	})
}

// Post uploads blob and returns the preview or thumbnail generated from it.
func (c *Client) Post(ctx context.Context, kind Kind, mode Mode, blob io.Reader, query Query, fileName string) (*BlobResponse, error) {
	op := opName(http.MethodPost, kind, mode)
	if err := checkTarget(kind, mode); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if blob == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilBlob)
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyFileName)
	}
	if err := validate(query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	url := c.previewURL + BuildPath(kind, mode, query)
	part := httpclient.FilePart{
		Field:       uploadField,
		FileName:    fileName,
		ContentType: uploadContentType,
		Reader:      blob,
	}
	return c.exchange(ctx, op, kind, mode, http.MethodPost, url, func(ctx context.Context) (httpclient.Response, error) {
		return c.http.PostMultipart(ctx, url, part, nil)
	})
}

func (c *Client) exchange(
	ctx context.Context,
	op string,
	kind Kind,
	mode Mode,
	method, url string,
	send func(context.Context) (httpclient.Response, error),
) (*BlobResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	c.log.DebugObj("preview request", "request", map[string]any{
		"method": method,
		"kind":   kind,
		"mode":   mode,
		"url":    url,
	})

	blob, err := c.send(ctx, op, send)
	c.metrics.ObserveRequest(kind, mode, method, Outcome(err), time.Since(start))
	if err != nil {
		c.log.WarnObj("preview request failed", "failure", failureFields(op, url, err))
		return nil, err
	}
	return blob, nil
}

func (c *Client) send(ctx context.Context, op string, send func(context.Context) (httpclient.Response, error)) (*BlobResponse, error) {
	resp, err := send(ctx)
	if err != nil {
		return nil, transportError(op, err)
	}
	blob, err := Classify(resp)
	if err != nil {
		if pe, ok := err.(*Error); ok {
			pe.Op = op
		}
		return nil, err
	}
	return blob, nil
}

// checkTarget keeps unknown kinds and modes off the wire and out of metric labels.
func checkTarget(kind Kind, mode Mode) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown resource kind %q", ErrInvalidQuery, kind)
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidQuery, mode)
	}
	return nil
}

// validate runs the query's own checks when it has any.
func validate(query Query) error {
	if v, ok := query.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func opName(method string, kind Kind, mode Mode) string {
	return strings.ToLower(method) + " " + string(mode) + " of " + string(kind)
}

func failureFields(op, url string, err error) map[string]any {
	fields := map[string]any{"op": op, "url": url, "error": err.Error()}
	if pe, ok := err.(*Error); ok && pe.StatusCode != 0 {
		fields["status"] = pe.StatusCode
	}
	return fields
}

// Image

func (c *Client) GetPreviewOfImage(ctx context.Context, q Query) (*BlobResponse, error) {
	return c.Get(ctx, KindImage, ModePreview, q)
}

func (c *Client) GetThumbnailOfImage(ctx context.Context, q Query) (*BlobResponse, error) {
	return c.Get(ctx, KindImage, ModeThumbnail, q)
}

func (c *Client) PostPreviewOfImage(ctx context.Context, blob io.Reader, q Query, fileName string) (*BlobResponse, error) {
	return c.Post(ctx, KindImage, ModePreview, blob, q, fileName)
}

func (c *Client) PostThumbnailOfImage(ctx context.Context, blob io.Reader, q Query, fileName string) (*BlobResponse, error) {
	return c.Post(ctx, KindImage, ModeThumbnail, blob, q, fileName)
}

// Pdf

func (c *Client) GetPreviewOfPdf(ctx context.Context, q Query) (*BlobResponse, error) {
	return c.Get(ctx, KindPdf, ModePreview, q)
}

func (c *Client) GetThumbnailOfPdf(ctx context.Context, q Query) (*BlobResponse, error) {
	return c.Get(ctx, KindPdf, ModeThumbnail, q)
}

func (c *Client) PostPreviewOfPdf(ctx context.Context, blob io.Reader, q Query, fileName string) (*BlobResponse, error) {
	return c.Post(ctx, KindPdf, ModePreview, blob, q, fileName)
}

func (c *Client) PostThumbnailOfPdf(ctx context.Context, blob io.Reader, q Query, fileName string) (*BlobResponse, error) {
	return c.Post(ctx, KindPdf, ModeThumbnail, blob, q, fileName)
}

// Document

func (c *Client) GetPreviewOfDocument(ctx context.Context, q Query) (*BlobResponse, error) {
	return c.Get(ctx, KindDocument, ModePreview, q)
}

func (c *Client) GetThumbnailOfDocument(ctx context.Context, q Query) (*BlobResponse, error) {
	return c.Get(ctx, KindDocument, ModeThumbnail, q)
}

func (c *Client) PostPreviewOfDocument(ctx context.Context, blob io.Reader, q Query, fileName string) (*BlobResponse, error) {
	return c.Post(ctx, KindDocument, ModePreview, blob, q, fileName)
}

func (c *Client) PostThumbnailOfDocument(ctx context.Context, blob io.Reader, q Query, fileName string) (*BlobResponse, error) {
	return c.Post(ctx, KindDocument, ModeThumbnail, blob, q, fileName)
}
