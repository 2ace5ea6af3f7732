package preview

import (
	"fmt"
	"io"
	"sync"
)

// BlobResponse wraps the body of a successful response. The caller owns it
// and must Close it; the underlying connection is held until then.
type BlobResponse struct {
	body          io.ReadCloser
	contentType   string
	contentLength int64
	closeOnce     sync.Once
	closeErr      error
}

func newBlobResponse(body io.ReadCloser, contentType string, contentLength int64) *BlobResponse {
	return &BlobResponse{body: body, contentType: contentType, contentLength: contentLength}
}

// ContentType is the media type reported by the service.
func (b *BlobResponse) ContentType() string { return b.contentType }

// ContentLength is -1 when the service did not report a length.
func (b *BlobResponse) ContentLength() int64 { return b.contentLength }

func (b *BlobResponse) Read(p []byte) (int, error) { return b.body.Read(p) }

// Close releases the body. It is safe to call more than once.
func (b *BlobResponse) Close() error {
	b.closeOnce.Do(func() { b.closeErr = b.body.Close() })
	return b.closeErr
}

// Bytes reads the whole blob and closes it.
func (b *BlobResponse) Bytes() ([]byte, error) {
	defer b.Close()
	data, err := io.ReadAll(b.body)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}
