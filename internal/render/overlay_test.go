package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/declutter/internal/geometry"
	"github.com/MeKo-Tech/declutter/internal/layout"
)

func testPage() layout.Page {
	return layout.Page{Clusters: []layout.Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(10, 10, 60, 40), Confidence: 0.9,
			Cells: []layout.TextCell{{Text: "hello", BBox: geometry.NewBBox(12, 12, 58, 20)}}},
		{ID: 2, Label: "picture", BBox: geometry.NewBBox(80, 10, 150, 90), Confidence: 0.8},
		{ID: 3, Label: "table", BBox: geometry.NewBBox(10, 100, 150, 160), Confidence: 0.7},
	}}
}

func TestOverlayDrawsCanvas(t *testing.T) {
	r := layout.NewResolver(layout.DefaultOptions())
	img := Overlay(r, testPage(), DefaultStyle(), true)
	if img == nil {
		t.Fatalf("expected an overlay image")
	}
	b := img.Bounds()
	// Content spans 10..150 x 10..160 plus a 10px margin each side.
	if b.Dx() != 160 || b.Dy() != 170 {
		t.Fatalf("unexpected canvas size %dx%d", b.Dx(), b.Dy())
	}
}

func TestOverlayEmptyPage(t *testing.T) {
	r := layout.NewResolver(layout.DefaultOptions())
	if img := Overlay(r, layout.Page{}, DefaultStyle(), false); img != nil {
		t.Fatalf("expected nil overlay for empty page")
	}
}

func TestOverlayOnBackground(t *testing.T) {
	r := layout.NewResolver(layout.DefaultOptions())
	bg := image.NewRGBA(image.Rect(0, 0, 200, 200))
	img := OverlayOn(bg, r, testPage(), DefaultStyle(), false)
	if img == nil {
		t.Fatalf("expected an overlay image")
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Fatalf("overlay must keep background dimensions")
	}
	// The top edge of cluster 1 should carry the regular stroke color.
	got := img.RGBAAt(30, 10)
	want := color.RGBA{255, 0, 0, 255}
	if got != want {
		t.Fatalf("expected regular stroke at (30,10), got %v", got)
	}
}

func TestSaveWritesPNG(t *testing.T) {
	r := layout.NewResolver(layout.DefaultOptions())
	img := Overlay(r, testPage(), DefaultStyle(), false)
	dir := t.TempDir()

	out, err := Save(img, dir, filepath.Join("some", "page_004.json"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(out) != "page_004_overlay.png" {
		t.Fatalf("unexpected output name %s", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	if c := ParseHexColor("#ff8000"); c != (color.RGBA{255, 128, 0, 255}) {
		t.Fatalf("unexpected color %v", c)
	}
	if c := ParseHexColor("00ff00"); c != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("unexpected color %v", c)
	}
	for _, bad := range []string{"", "zzz", "#12345", "#1234567"} {
		if ParseHexColor(bad) != nil {
			t.Fatalf("expected nil for %q", bad)
		}
	}
}
