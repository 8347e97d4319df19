package layout

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the coarse cluster type the resolver partitions by. It is
// derived from the normalized label on demand and never stored.
type Category int

const (
	CategoryRegular Category = iota
	CategoryPicture
	CategoryWrapper
)

// String returns a human readable category name.
func (c Category) String() string {
	switch c {
	case CategoryPicture:
		return "picture"
	case CategoryWrapper:
		return "wrapper"
	default:
		return "regular"
	}
}

var labelSeparators = strings.NewReplacer("-", "_", " ", "_")

// NormalizeLabel lowercases a cluster label and replaces hyphens and spaces
// with underscores, e.g. "Section-header" becomes "section_header". The
// operation is idempotent.
func NormalizeLabel(label string) string {
	return labelSeparators.Replace(cases.Lower(language.Und).String(label))
}

// CategoryOf buckets a cluster by its normalized label. Wrapper labels
// denote container-like regions (forms, key-value regions, tables, document
// indexes); anything that is neither a wrapper nor a picture is regular,
// including unrecognized labels. Classification is recomputed on every call;
// normalization is cheap and idempotent.
func (r *Resolver) CategoryOf(c *Cluster) Category {
	label := NormalizeLabel(c.Label)
	if _, ok := r.wrapperLabels[label]; ok {
		return CategoryWrapper
	}
	if _, ok := r.pictureLabels[label]; ok {
		return CategoryPicture
	}
	return CategoryRegular
}
