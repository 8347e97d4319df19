// Package layout implements the overlap-resolution stage of the document
// layout pipeline. It receives the page regions produced by the upstream
// detection stage, each carrying its assigned text cells, and merges regions
// that geometrically duplicate each other so that every cell survives
// exactly once.
package layout

import (
	"github.com/MeKo-Tech/declutter/internal/geometry"
)

// TextCell is a unit of recognized text with its own box and styling.
type TextCell struct {
	Text       string        `json:"text"`
	BBox       geometry.BBox `json:"bbox"`
	Confidence float64       `json:"confidence,omitempty"`
	Bold       bool          `json:"bold,omitempty"`
	Italic     bool          `json:"italic,omitempty"`
}

// Cluster is a detected page region with its assigned text cells. The id is
// unique within one page's input; the resolver never renumbers ids, it only
// drops the ids of clusters that lose a merge.
type Cluster struct {
	ID         int           `json:"id"`
	Label      string        `json:"label"`
	BBox       geometry.BBox `json:"bbox"`
	Confidence float64       `json:"confidence"`
	Cells      []TextCell    `json:"cells"`
}

// Page is the page-level envelope handed between pipeline stages.
type Page struct {
	Clusters []Cluster `json:"clusters"`
}
