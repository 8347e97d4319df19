package layout

import (
	"log/slog"
	"sort"

	"github.com/MeKo-Tech/declutter/internal/unionfind"
)

// Resolver removes geometric duplication from one page's cluster set. It is
// stateless across calls; a single Resolver may be shared by concurrent
// page resolutions.
type Resolver struct {
	opts          Options
	wrapperLabels map[string]struct{}
	pictureLabels map[string]struct{}
}

// NewResolver creates a resolver with the given options. Label sets are
// normalized once at construction.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		opts:          opts,
		wrapperLabels: make(map[string]struct{}, len(opts.WrapperLabels)),
		pictureLabels: make(map[string]struct{}, len(opts.PictureLabels)),
	}
	for _, l := range opts.WrapperLabels {
		r.wrapperLabels[NormalizeLabel(l)] = struct{}{}
	}
	for _, l := range opts.PictureLabels {
		r.pictureLabels[NormalizeLabel(l)] = struct{}{}
	}
	return r
}

// Options returns a copy of the resolver's options.
func (r *Resolver) Options() Options { return r.opts }

// ProcessPage resolves a page envelope.
func (r *Resolver) ProcessPage(p Page) Page {
	return Page{Clusters: r.Process(p.Clusters)}
}

// Process resolves one page's cluster list: partitions by coarse category,
// removes overlapping clusters within each partition independently, then
// recombines (regular, then picture, then wrapper) with normalized labels.
// The input slice is not modified.
func (r *Resolver) Process(clusters []Cluster) []Cluster {
	var regular, picture, wrapper []Cluster
	for _, c := range clusters {
		switch r.CategoryOf(&c) {
		case CategoryPicture:
			picture = append(picture, c)
		case CategoryWrapper:
			wrapper = append(wrapper, c)
		default:
			regular = append(regular, c)
		}
	}

	out := make([]Cluster, 0, len(clusters))
	out = append(out, r.removeOverlapping(regular, r.opts.params(CategoryRegular))...)
	out = append(out, r.removeOverlapping(picture, r.opts.params(CategoryPicture))...)
	out = append(out, r.removeOverlapping(wrapper, r.opts.params(CategoryWrapper))...)

	for i := range out {
		out[i].Label = NormalizeLabel(out[i].Label)
	}

	if len(out) < len(clusters) {
		slog.Debug("resolved overlapping clusters",
			"in", len(clusters), "out", len(out),
			"regular", len(regular), "picture", len(picture), "wrapper", len(wrapper))
	}
	return out
}

// removeOverlapping collapses every group of mutually overlapping clusters
// within one category into its surviving cluster. Merging is driven purely
// by geometry; labels only influence which member survives. Singleton
// groups pass through with their original cell order.
func (r *Resolver) removeOverlapping(clusters []Cluster, p selectParams) []Cluster {
	if len(clusters) <= 1 {
		return clusters
	}

	byID := make(map[int]*Cluster, len(clusters))
	ids := make([]int, 0, len(clusters))
	for i := range clusters {
		byID[clusters[i].ID] = &clusters[i]
		ids = append(ids, clusters[i].ID)
	}

	uf := unionfind.New(ids)
	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			if checkOverlap(clusters[i].BBox, clusters[j].BBox,
				r.opts.OverlapThreshold, r.opts.ContainmentThreshold) {
				uf.Union(clusters[i].ID, clusters[j].ID)
			}
		}
	}

	// Read out groups ordered by their smallest member id so the result is
	// independent of map iteration order.
	groups := make([][]int, 0, len(clusters))
	for _, members := range uf.Groups() {
		groups = append(groups, members)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })

	out := make([]Cluster, 0, len(groups))
	for _, members := range groups {
		if len(members) == 1 {
			out = append(out, *byID[members[0]])
			continue
		}
		out = append(out, r.mergeGroup(members, byID, p))
	}
	// Survivor ids are a deterministic function of the input, so ordering by
	// id keeps the bucket output stable under input permutation and under
	// reprocessing.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// mergeGroup selects the survivor of a multi-member group and moves every
// other member's cells into it, deduplicated and restored to reading order.
// Losing clusters are discarded entirely.
func (r *Resolver) mergeGroup(members []int, byID map[int]*Cluster, p selectParams) Cluster {
	group := make([]*Cluster, len(members))
	for i, id := range members {
		group[i] = byID[id]
	}

	best := *r.selectBest(group, p)
	cells := make([]TextCell, 0, len(best.Cells))
	cells = append(cells, best.Cells...)
	for _, c := range group {
		if c.ID == best.ID {
			continue
		}
		cells = append(cells, c.Cells...)
		c.Cells = nil
	}
	best.Cells = sortCells(deduplicateCells(cells))
	return best
}
