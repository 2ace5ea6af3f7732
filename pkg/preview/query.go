package preview

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query describes what the preview service should render. Its string form
// is a path fragment that always starts with "/".
type Query interface {
	String() string
	FileOwnerID() (string, bool)
}

// Quality is the compression level requested from the service.
type Quality string

const (
	QualityLowest  Quality = "lowest"
	QualityLow     Quality = "low"
	QualityMedium  Quality = "medium"
	QualityHigh    Quality = "high"
	QualityHighest Quality = "highest"
)

// Valid reports whether q is empty or a known quality.
func (q Quality) Valid() bool {
	switch q {
	case "", QualityLowest, QualityLow, QualityMedium, QualityHigh, QualityHighest:
		return true
	}
	return false
}

// Format is the encoding of the generated blob.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
)

// Valid reports whether f is empty or a supported output format.
func (f Format) Valid() bool {
	switch f {
	case "", FormatJPEG, FormatPNG, FormatGIF:
		return true
	}
	return false
}

// Shape applies to thumbnails only.
type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeRounded     Shape = "rounded"
)

// Valid reports whether s is empty or a known shape.
func (s Shape) Valid() bool {
	switch s {
	case "", ShapeRectangular, ShapeRounded:
		return true
	}
	return false
}

// Area renders a preview area such as "200x200".
func Area(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height)
}

// Params is the query descriptor shared by image, pdf and document requests.
// Zero fields are left out of the rendered form.
type Params struct {
	FileID  string
	Version int
	Area    string

	Quality      Quality
	OutputFormat Format
	Crop         bool
	Shape        Shape
	FirstPage    int
	LastPage     int

	// OwnerID is sent as a header on downloads and never rendered.
	OwnerID string
}

// FileOwnerID returns the owner id when one is set.
func (p Params) FileOwnerID() (string, bool) {
	id := strings.TrimSpace(p.OwnerID)
	return id, id != ""
}

// Validate checks the descriptor itself; it knows nothing about file content.
func (p Params) Validate() error {
	switch {
	case !p.Quality.Valid():
		return fmt.Errorf("%w: unknown quality %q", ErrInvalidQuery, p.Quality)
	case !p.OutputFormat.Valid():
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidQuery, p.OutputFormat)
	case !p.Shape.Valid():
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidQuery, p.Shape)
	case p.Version < 0:
		return fmt.Errorf("%w: negative version %d", ErrInvalidQuery, p.Version)
	case p.FirstPage < 0 || p.LastPage < 0:
		return fmt.Errorf("%w: negative page bound", ErrInvalidQuery)
	case p.FirstPage > 0 && p.LastPage > 0 && p.FirstPage > p.LastPage:
		return fmt.Errorf("%w: first page %d after last page %d", ErrInvalidQuery, p.FirstPage, p.LastPage)
	}
	return nil
}

// String renders the path components followed by the encoded parameters,
// e.g. "/<file-id>/1/200x200/?quality=high". An empty Params renders "/".
func (p Params) String() string {
	segments := make([]string, 0, 3)
	if id := strings.Trim(p.FileID, "/"); id != "" {
		segments = append(segments, url.PathEscape(id))
		if p.Version > 0 {
			segments = append(segments, strconv.Itoa(p.Version))
		}
	}
	if area := strings.Trim(p.Area, "/"); area != "" {
		segments = append(segments, url.PathEscape(area))
	}

	var b strings.Builder
	b.WriteByte('/')
	if len(segments) > 0 {
		b.WriteString(strings.Join(segments, "/"))
		b.WriteByte('/')
	}
	if values := p.values(); len(values) > 0 {
		b.WriteByte('?')
		b.WriteString(values.Encode())
	}
	return b.String()
}

func (p Params) values() url.Values {
	v := url.Values{}
	if p.Quality != "" {
		v.Set("quality", string(p.Quality))
	}
	if p.OutputFormat != "" {
		v.Set("output_format", string(p.OutputFormat))
	}
	if p.Crop {
		v.Set("crop", "true")
	}
	if p.Shape != "" {
		v.Set("shape", string(p.Shape))
	}
	if p.FirstPage > 0 {
		v.Set("first_page", strconv.Itoa(p.FirstPage))
	}
	if p.LastPage > 0 {
		v.Set("last_page", strconv.Itoa(p.LastPage))
	}
	return v
}
