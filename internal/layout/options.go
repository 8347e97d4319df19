package layout

// Options contains the tunable thresholds for overlap resolution. The zero
// value is not usable; start from DefaultOptions.
type Options struct {
	// Pairwise overlap predicate.
	OverlapThreshold     float64 // IoU cutoff above which two boxes overlap
	ContainmentThreshold float64 // directional containment cutoff

	// Per-category survivor selection thresholds.
	RegularAreaThreshold float64
	RegularConfThreshold float64
	PictureAreaThreshold float64
	PictureConfThreshold float64
	WrapperAreaThreshold float64
	WrapperConfThreshold float64

	// Label-aware selection rules.
	ListItemAreaSimilarityThreshold float64
	CodeContainmentThreshold        float64

	// Label sets driving the coarse classification. Entries are matched
	// against normalized labels.
	WrapperLabels []string
	PictureLabels []string
}

// DefaultOptions returns the stage's default thresholds.
func DefaultOptions() Options {
	return Options{
		OverlapThreshold:                0.8,
		ContainmentThreshold:            0.8,
		RegularAreaThreshold:            1.3,
		RegularConfThreshold:            0.05,
		PictureAreaThreshold:            2.0,
		PictureConfThreshold:            0.3,
		WrapperAreaThreshold:            2.0,
		WrapperConfThreshold:            0.2,
		ListItemAreaSimilarityThreshold: 0.2,
		CodeContainmentThreshold:        0.8,
		WrapperLabels:                   []string{"form", "key_value_region", "table", "document_index"},
		PictureLabels:                   []string{"picture"},
	}
}

// selectParams carries the per-category thresholds used during survivor
// selection.
type selectParams struct {
	areaThreshold float64
	confThreshold float64
}

// params returns the selection thresholds for a category.
func (o Options) params(cat Category) selectParams {
	switch cat {
	case CategoryPicture:
		return selectParams{areaThreshold: o.PictureAreaThreshold, confThreshold: o.PictureConfThreshold}
	case CategoryWrapper:
		return selectParams{areaThreshold: o.WrapperAreaThreshold, confThreshold: o.WrapperConfThreshold}
	default:
		return selectParams{areaThreshold: o.RegularAreaThreshold, confThreshold: o.RegularConfThreshold}
	}
}
