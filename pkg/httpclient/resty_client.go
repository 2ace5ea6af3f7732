package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A zero timeout leaves requests bounded only by their context.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	resp, err := r.request(ctx, headers).Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// PostMultipart sends part as the only field of a multipart/form-data body.
func (r *RestyClient) PostMultipart(ctx context.Context, url string, part FilePart, headers map[string]string) (Response, error) {
	if part.Reader == nil {
		return nil, fmt.Errorf("multipart field %q has no reader", part.Field)
	}
	resp, err := r.request(ctx, headers).
		SetMultipartField(part.Field, part.FileName, part.ContentType, part.Reader).
		Post(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// request prepares an unparsed request so the body reaches the caller as a stream.
func (r *RestyClient) request(ctx context.Context, headers map[string]string) *resty.Request {
	req := r.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	return req
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) ContentType() string { return r.resp.Header().Get("Content-Type") }

func (r *restyResponseAdapter) ContentLength() int64 {
	if raw := r.resp.RawResponse; raw != nil {
		return raw.ContentLength
	}
	return -1
}

func (r *restyResponseAdapter) RawBody() io.ReadCloser {
	if body := r.resp.RawBody(); body != nil {
		return body
	}
	return http.NoBody
}
