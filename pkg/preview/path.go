package preview

import (
	"fmt"
	"strings"
)

// Kind selects the resource endpoint.
type Kind string

const (
	KindImage    Kind = "image"
	KindPdf      Kind = "pdf"
	KindDocument Kind = "document"
)

// Valid reports whether k is one of the service's resource endpoints.
func (k Kind) Valid() bool {
	switch k {
	case KindImage, KindPdf, KindDocument:
		return true
	}
	return false
}

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	if k := Kind(strings.ToLower(strings.TrimSpace(s))); k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

// Mode selects a full preview or a thumbnail.
type Mode string

const (
	ModePreview   Mode = "preview"
	ModeThumbnail Mode = "thumbnail"
)

// Valid reports whether m is preview or thumbnail.
func (m Mode) Valid() bool {
	return m == ModePreview || m == ModeThumbnail
}

func ParseMode(s string) (Mode, error) {
	if m := Mode(strings.ToLower(strings.TrimSpace(s))); m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

const thumbnailSegment = "thumbnail"

// BuildPath returns the path under the /preview prefix for kind and mode.
func BuildPath(kind Kind, mode Mode, query Query) string {
	raw := "/"
	if query != nil {
		raw = query.String()
	}
	if mode == ModeThumbnail {
		raw = ThumbnailPath(raw)
	}
	return "/" + string(kind) + raw
}

// ThumbnailPath appends the thumbnail segment to the path part of raw,
// leaving the query string untouched:
//
//	"/"                     -> "/thumbnail/"
//	"/200x200/"             -> "/200x200/thumbnail/"
//	"/200x200/?quality=high" -> "/200x200/thumbnail?quality=high"
func ThumbnailPath(raw string) string {
	path, rawQuery, hasQuery := strings.Cut(raw, "?")

	segments := make([]string, 0, 4)
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		if hasQuery {
			return "/" + thumbnailSegment + "?" + rawQuery
		}
		return "/" + thumbnailSegment + "/"
	}

	segments = append(segments, thumbnailSegment)
	out := "/" + strings.Join(segments, "/")
	if hasQuery {
		return out + "?" + rawQuery
	}
	return out + "/"
}
