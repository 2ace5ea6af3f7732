package httpclient

import (
	"context"
	"io"
)

// Response is a minimal streamed HTTP response contract. RawBody must be
// closed by whoever ends up owning the response.
type Response interface {
	StatusCode() int
	ContentType() string
	ContentLength() int64
	RawBody() io.ReadCloser
}

// FilePart describes the single file part of a multipart upload.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	PostMultipart(ctx context.Context, url string, part FilePart, headers map[string]string) (Response, error)
}
