package layout

import "math"

const (
	labelListItem = "list_item"
	labelText     = "text"
	labelCode     = "code"
)

// selectBest picks the surviving cluster from a group of mutually
// overlapping clusters of the same category. The group must be sorted by
// ascending id. A candidate is eligible only if shouldPrefer holds against
// every other member; among eligible candidates a strictly larger one
// replaces the running best unless the best is meaningfully more confident.
// With no eligible candidate the first member survives.
func (r *Resolver) selectBest(group []*Cluster, p selectParams) *Cluster {
	var best *Cluster
	for _, candidate := range group {
		eligible := true
		for _, other := range group {
			if other == candidate {
				continue
			}
			if !r.shouldPrefer(candidate, other, p) {
				eligible = false
				break
			}
		}
		if !eligible {
			continue
		}
		if best == nil {
			best = candidate
			continue
		}
		if candidate.BBox.Area() > best.BBox.Area() &&
			best.Confidence-candidate.Confidence <= p.confThreshold {
			best = candidate
		}
	}
	if best == nil {
		return group[0]
	}
	return best
}

// shouldPrefer decides whether candidate should be kept over other. The
// label rules are early accepts; failing them falls through to the generic
// area/confidence rule, which rejects only when the candidate is neither
// meaningfully bigger nor comparably confident.
func (r *Resolver) shouldPrefer(candidate, other *Cluster, p selectParams) bool {
	candLabel := NormalizeLabel(candidate.Label)

	// A list item of comparable size wins over an overlapping text block.
	if candLabel == labelListItem && NormalizeLabel(other.Label) == labelText {
		if math.Abs(1-areaRatio(candidate, other)) < r.opts.ListItemAreaSimilarityThreshold {
			return true
		}
	}

	// A code block that swallows most of the other region wins.
	if candLabel == labelCode {
		if other.BBox.IntersectionOverSelf(candidate.BBox) > r.opts.CodeContainmentThreshold {
			return true
		}
	}

	confDiff := other.Confidence - candidate.Confidence
	if areaRatio(candidate, other) <= p.areaThreshold && confDiff > p.confThreshold {
		return false
	}
	return true
}

// areaRatio returns candidate.area / other.area, 0 when other has no area.
func areaRatio(candidate, other *Cluster) float64 {
	otherArea := other.BBox.Area()
	if otherArea == 0 {
		return 0
	}
	return candidate.BBox.Area() / otherArea
}
