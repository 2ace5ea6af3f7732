package preview

import "testing"

func TestThumbnailPath(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty query", raw: "/", want: "/thumbnail/"},
		{name: "area with params", raw: "/200x200/?quality=high", want: "/200x200/thumbnail?quality=high"},
		{name: "area without params", raw: "/200x200/", want: "/200x200/thumbnail/"},
		{name: "file and version", raw: "/f1/2/100x50/?output_format=png&shape=rounded", want: "/f1/2/100x50/thumbnail?output_format=png&shape=rounded"},
		{name: "params only", raw: "/?quality=low", want: "/thumbnail?quality=low"},
		{name: "slash inside param value", raw: "/?q=a/b/c", want: "/thumbnail?q=a/b/c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ThumbnailPath(tc.raw); got != tc.want {
				t.Fatalf("ThumbnailPath(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestBuildPathPerKindAndMode(t *testing.T) {
	q := Params{Area: "200x200", Quality: QualityHigh}
	for _, kind := range []Kind{KindImage, KindPdf, KindDocument} {
		preview := BuildPath(kind, ModePreview, q)
		if want := "/" + string(kind) + "/200x200/?quality=high"; preview != want {
			t.Fatalf("preview path for %s = %q, want %q", kind, preview, want)
		}
		thumb := BuildPath(kind, ModeThumbnail, q)
		if want := "/" + string(kind) + "/200x200/thumbnail?quality=high"; thumb != want {
			t.Fatalf("thumbnail path for %s = %q, want %q", kind, thumb, want)
		}
		if again := BuildPath(kind, ModeThumbnail, q); again != thumb {
			t.Fatalf("BuildPath not deterministic: %q vs %q", thumb, again)
		}
	}
}

func TestBuildPathEmptyQuery(t *testing.T) {
	if got := BuildPath(KindPdf, ModeThumbnail, Params{}); got != "/pdf/thumbnail/" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := BuildPath(KindDocument, ModePreview, nil); got != "/document/" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestParseKindAndMode(t *testing.T) {
	if k, err := ParseKind(" PDF "); err != nil || k != KindPdf {
		t.Fatalf("ParseKind: got %q err=%v", k, err)
	}
	if _, err := ParseKind("video"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if m, err := ParseMode("Thumbnail"); err != nil || m != ModeThumbnail {
		t.Fatalf("ParseMode: got %q err=%v", m, err)
	}
	if _, err := ParseMode("full"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestKindAndModeValid(t *testing.T) {
	for _, k := range []Kind{KindImage, KindPdf, KindDocument} {
		if !k.Valid() {
			t.Fatalf("expected %q to be valid", k)
		}
	}
	for _, k := range []Kind{"", "video", "IMAGE"} {
		if k.Valid() {
			t.Fatalf("expected %q to be invalid", k)
		}
	}
	if !ModePreview.Valid() || !ModeThumbnail.Valid() {
		t.Fatal("expected preview and thumbnail to be valid")
	}
	if Mode("full").Valid() || Mode("").Valid() {
		t.Fatal("expected unknown modes to be invalid")
	}
}
