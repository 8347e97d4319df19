// Package geometry provides the axis-aligned bounding-box math used by the
// layout resolution stage. Coordinates are page units with the origin at the
// top-left corner, so Top < Bottom for any well-formed box.
package geometry

import "math"

// BBox represents an axis-aligned bounding box in float page coordinates.
type BBox struct {
	Left   float64 `json:"l"`
	Top    float64 `json:"t"`
	Right  float64 `json:"r"`
	Bottom float64 `json:"b"`
}

// NewBBox constructs a BBox from two corner coordinates ensuring ordering.
func NewBBox(l, t, r, b float64) BBox {
	if l > r {
		l, r = r, l
	}
	if t > b {
		t, b = b, t
	}
	return BBox{Left: l, Top: t, Right: r, Bottom: b}
}

// Width returns the box width.
func (b BBox) Width() float64 { return b.Right - b.Left }

// Height returns the box height.
func (b BBox) Height() float64 { return b.Bottom - b.Top }

// Area returns the box area. Degenerate boxes (zero or negative extent, or
// NaN coordinates) have area 0.
func (b BBox) Area() float64 {
	w := b.Width()
	h := b.Height()
	if !(w > 0) || !(h > 0) {
		return 0
	}
	return w * h
}

// intersectionArea returns the area of overlap between two boxes, 0 when
// they are disjoint or either box is degenerate.
func intersectionArea(a, b BBox) float64 {
	left := math.Max(a.Left, b.Left)
	top := math.Max(a.Top, b.Top)
	right := math.Min(a.Right, b.Right)
	bottom := math.Min(a.Bottom, b.Bottom)
	if !(left < right) || !(top < bottom) {
		return 0
	}
	return (right - left) * (bottom - top)
}

// IoU computes Intersection over Union with another box. Returns 0 when
// either box has zero area.
func (b BBox) IoU(other BBox) float64 {
	areaA := b.Area()
	areaB := other.Area()
	if areaA == 0 || areaB == 0 {
		return 0
	}
	inter := intersectionArea(b, other)
	union := areaA + areaB - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// IntersectionOverSelf computes the fraction of this box's area that lies
// inside other. Returns 0 when this box has zero area. Unlike IoU this
// measure is directional: b.IntersectionOverSelf(o) is how much of b sits
// inside o, not the reverse.
func (b BBox) IntersectionOverSelf(other BBox) float64 {
	area := b.Area()
	if area == 0 {
		return 0
	}
	return intersectionArea(b, other) / area
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}
