// Package render draws resolved cluster layouts as overlay images for
// debugging. Cluster rectangles are color-coded by coarse category; cell
// boxes can be drawn in a lighter stroke inside their cluster.
package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

// Style selects the overlay stroke colors per coarse category.
type Style struct {
	Regular   color.Color
	Picture   color.Color
	Wrapper   color.Color
	Cell      color.Color
	Thickness int
	Margin    int // canvas padding around the content bounds
}

// DefaultStyle returns the default overlay colors.
func DefaultStyle() Style {
	return Style{
		Regular:   color.RGBA{255, 0, 0, 255},
		Picture:   color.RGBA{0, 128, 255, 255},
		Wrapper:   color.RGBA{0, 180, 0, 255},
		Cell:      color.RGBA{160, 160, 160, 255},
		Thickness: 2,
		Margin:    10,
	}
}

// Overlay draws the page's clusters onto a white canvas sized to the page
// content and returns the RGBA image. Returns nil for a page with no
// drawable geometry.
func Overlay(r *layout.Resolver, page layout.Page, style Style, withCells bool) *image.RGBA {
	bounds := contentBounds(page, style.Margin)
	if bounds.Empty() {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Set(x, y, color.White)
		}
	}
	offX, offY := bounds.Min.X, bounds.Min.Y
	return overlayOn(dst, r, page, style, withCells, offX, offY)
}

// OverlayOn draws the page's clusters over an existing page raster (for
// example the scanned page image the clusters were detected on) and returns
// an RGBA copy.
func OverlayOn(img image.Image, r *layout.Resolver, page layout.Page, style Style, withCells bool) *image.RGBA {
	if img == nil {
		return Overlay(r, page, style, withCells)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return overlayOn(dst, r, page, style, withCells, b.Min.X, b.Min.Y)
}

func overlayOn(dst *image.RGBA, r *layout.Resolver, page layout.Page, style Style,
	withCells bool, offX, offY int,
) *image.RGBA {
	for i := range page.Clusters {
		c := &page.Clusters[i]
		col := style.colorFor(r.CategoryOf(c))
		drawRect(dst, boxToRect(c, offX, offY), col, style.Thickness)
		if !withCells {
			continue
		}
		for _, cell := range c.Cells {
			rect := image.Rect(
				int(math.Floor(cell.BBox.Left))-offX,
				int(math.Floor(cell.BBox.Top))-offY,
				int(math.Ceil(cell.BBox.Right))-offX,
				int(math.Ceil(cell.BBox.Bottom))-offY,
			)
			drawRect(dst, rect, style.Cell, 1)
		}
	}
	return dst
}

func (s Style) colorFor(cat layout.Category) color.Color {
	switch cat {
	case layout.CategoryPicture:
		return s.Picture
	case layout.CategoryWrapper:
		return s.Wrapper
	default:
		return s.Regular
	}
}

func boxToRect(c *layout.Cluster, offX, offY int) image.Rectangle {
	return image.Rect(
		int(math.Floor(c.BBox.Left))-offX,
		int(math.Floor(c.BBox.Top))-offY,
		int(math.Ceil(c.BBox.Right))-offX,
		int(math.Ceil(c.BBox.Bottom))-offY,
	)
}

// contentBounds computes the pixel bounds covering all cluster boxes.
func contentBounds(page layout.Page, margin int) image.Rectangle {
	var bounds image.Rectangle
	first := true
	for _, c := range page.Clusters {
		if c.BBox.Area() == 0 {
			continue
		}
		rect := image.Rect(
			int(math.Floor(c.BBox.Left)), int(math.Floor(c.BBox.Top)),
			int(math.Ceil(c.BBox.Right)), int(math.Ceil(c.BBox.Bottom)),
		)
		if first {
			bounds = rect
			first = false
		} else {
			bounds = bounds.Union(rect)
		}
	}
	if first {
		return image.Rectangle{}
	}
	return bounds.Inset(-margin)
}

// drawRect draws an axis-aligned rectangle outline into dst.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for t := 0; t < thickness; t++ {
		yTop := rect.Min.Y + t
		yBot := rect.Max.Y - 1 - t
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, yTop, col)
			dst.Set(x, yBot, col)
		}
	}
	for t := 0; t < thickness; t++ {
		xLeft := rect.Min.X + t
		xRight := rect.Max.X - 1 - t
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.Set(xLeft, y, col)
			dst.Set(xRight, y, col)
		}
	}
}

// LoadBackground decodes a page raster for OverlayOn. PNG, JPEG, BMP and
// TIFF are supported.
func LoadBackground(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from a CLI flag
	if err != nil {
		return nil, fmt.Errorf("failed to open background image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background image %s: %w", path, err)
	}
	return img, nil
}

// Save writes an overlay image as PNG under dir, named after the source
// page file.
func Save(img image.Image, dir, sourcePath string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create overlay dir: %w", err)
	}
	base := filepath.Base(sourcePath)
	out := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+"_overlay.png")
	if err := imaging.Save(img, out); err != nil {
		return "", fmt.Errorf("failed to save overlay: %w", err)
	}
	return out, nil
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB" into a color; nil when the
// string is not a valid hex color.
func ParseHexColor(s string) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil
	}
	return color.RGBA{
		R: uint8(v >> 16), //nolint:gosec
		G: uint8(v >> 8),  //nolint:gosec
		B: uint8(v),       //nolint:gosec
		A: 255,
	}
}
