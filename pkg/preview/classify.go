package preview

import (
	"io"
	"net/http"

	"github.com/zextras/carbonio-preview-go/pkg/httpclient"
)

// maxDrain bounds how much of an error body is read before closing so the
// connection can be reused.
const maxDrain = 64 << 10

// Classify maps a completed exchange to a blob or a typed failure. The body
// of any non-200 response is drained and closed here.
func Classify(resp httpclient.Response) (*BlobResponse, error) {
	body := resp.RawBody()
	status := resp.StatusCode()
	if status == http.StatusOK {
		return newBlobResponse(body, resp.ContentType(), resp.ContentLength()), nil
	}

	_, _ = io.CopyN(io.Discard, body, maxDrain)
	_ = body.Close()
	return nil, &Error{Kind: kindForStatus(status), StatusCode: status}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrItemNotFound
	case http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return ErrInternalServer
	}
}

// transportError reports a failure that happened before a status was received.
func transportError(op string, cause error) error {
	return &Error{Op: op, Kind: ErrInternalServer, Cause: cause}
}
