package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

type mockResponse struct {
	status      int
	contentType string
	body        *trackingBody
}

func newMockResponse(status int, body string) *mockResponse {
	return &mockResponse{status: status, contentType: "image/jpeg", body: &trackingBody{Reader: strings.NewReader(body)}}
}

func (r *mockResponse) StatusCode() int        { return r.status }
func (r *mockResponse) ContentType() string    { return r.contentType }
func (r *mockResponse) ContentLength() int64   { return -1 }
func (r *mockResponse) RawBody() io.ReadCloser { return r.body }

func TestClassifyStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{status: http.StatusOK},
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusNotFound, want: ErrItemNotFound},
		{status: http.StatusUnprocessableEntity, want: ErrValidation},
		{status: http.StatusServiceUnavailable, want: ErrInternalServer},
		{status: http.StatusInternalServerError, want: ErrInternalServer},
		{status: http.StatusTeapot, want: ErrInternalServer},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			resp := newMockResponse(tc.status, "payload")
			blob, err := Classify(resp)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				defer blob.Close()
				if resp.body.closed {
					t.Fatal("success body must stay open for the caller")
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if blob != nil {
				t.Fatal("expected nil blob on failure")
			}
			if !resp.body.closed {
				t.Fatal("failure body was not closed")
			}
			var pe *Error
			if !errors.As(err, &pe) || pe.StatusCode != tc.status {
				t.Fatalf("expected *Error with status %d, got %#v", tc.status, err)
			}
		})
	}
}

func TestClassifyPreservesBody(t *testing.T) {
	payload := "\x89PNG\r\n\x1a\n raw bytes"
	blob, err := Classify(newMockResponse(http.StatusOK, payload))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if blob.ContentType() != "image/jpeg" {
		t.Fatalf("unexpected content type %q", blob.ContentType())
	}
	data, err := blob.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("body changed: %q", data)
	}
	if err := blob.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestErrorWrapsCause(t *testing.T) {
	err := transportError("get preview of image", context.DeadlineExceeded)
	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("expected internal server kind, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be reachable, got %v", err)
	}
	if KindOf(err) != ErrInternalServer {
		t.Fatalf("KindOf = %v", KindOf(err))
	}
	if KindOf(errors.New("other")) != nil {
		t.Fatal("expected nil kind for foreign error")
	}
	if !strings.Contains(err.Error(), "deadline exceeded") {
		t.Fatalf("cause missing from message: %q", err.Error())
	}
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		"ok":               nil,
		"precondition":     ErrMissingOwnerID,
		"not_found":        &Error{Kind: ErrItemNotFound},
		"validation_error": &Error{Kind: ErrValidation},
		"bad_request":      &Error{Kind: ErrBadRequest},
		"internal_error":   &Error{Kind: ErrInternalServer},
	}
	for want, err := range cases {
		if got := Outcome(err); got != want {
			t.Fatalf("Outcome(%v) = %q, want %q", err, got, want)
		}
	}
}
