package layout

import (
	"fmt"
	"sort"
)

// cellKey builds the identity key used for deduplication: the cell text plus
// its coordinates at fixed decimal precision, so boxes differing only by
// float noise below six fractional digits collapse.
func cellKey(c TextCell) string {
	return fmt.Sprintf("%s|%.6f|%.6f|%.6f|%.6f",
		c.Text, c.BBox.Left, c.BBox.Top, c.BBox.Right, c.BBox.Bottom)
}

// deduplicateCells keeps the first occurrence of each (text, bbox) identity,
// preserving first-seen order.
func deduplicateCells(cells []TextCell) []TextCell {
	seen := make(map[string]struct{}, len(cells))
	out := make([]TextCell, 0, len(cells))
	for _, c := range cells {
		key := cellKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// sortCells orders cells in reading order: top to bottom, then left to
// right. The sort is stable, so ties keep their input order.
func sortCells(cells []TextCell) []TextCell {
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].BBox.Top != cells[j].BBox.Top {
			return cells[i].BBox.Top < cells[j].BBox.Top
		}
		return cells[i].BBox.Left < cells[j].BBox.Left
	})
	return cells
}
