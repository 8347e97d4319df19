package layout

import "github.com/MeKo-Tech/declutter/internal/geometry"

// checkOverlap reports whether two cluster boxes duplicate each other: a
// high symmetric IoU, or either box mostly contained in the other.
// Degenerate boxes never overlap anything. The result does not depend on
// argument order even though the two containment terms individually do.
func checkOverlap(a, b geometry.BBox, overlapThreshold, containmentThreshold float64) bool {
	if a.Area() == 0 || b.Area() == 0 {
		return false
	}
	if a.IoU(b) > overlapThreshold {
		return true
	}
	if a.IntersectionOverSelf(b) > containmentThreshold {
		return true
	}
	return b.IntersectionOverSelf(a) > containmentThreshold
}
