// Package unionfind implements a disjoint-set structure over explicit
// element id lists, with path compression and union by rank. It is used to
// group mutually overlapping layout clusters before merging.
package unionfind

import "sort"

// UnionFind tracks group membership for a fixed set of element ids. Ids are
// arbitrary ints; they are not assumed to be contiguous or zero-based.
type UnionFind struct {
	parent map[int]int
	rank   map[int]int
	ids    []int
}

// New creates a UnionFind where every given id starts as its own group.
func New(ids []int) *UnionFind {
	uf := &UnionFind{
		parent: make(map[int]int, len(ids)),
		rank:   make(map[int]int, len(ids)),
		ids:    make([]int, 0, len(ids)),
	}
	for _, id := range ids {
		if _, ok := uf.parent[id]; ok {
			continue
		}
		uf.parent[id] = id
		uf.rank[id] = 0
		uf.ids = append(uf.ids, id)
	}
	return uf
}

// Find returns the root of x's group. The walk is iterative; every node on
// the visited path is re-parented to the root afterwards.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Union merges the groups containing x and y. No-op if they already share a
// root. The lower-rank root is attached under the higher-rank one; equal
// ranks attach y's root under x's and bump x's rank.
func (uf *UnionFind) Union(x, y int) {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
}

// Groups returns the current partition as a root id to sorted member ids
// mapping. Every tracked id appears in exactly one group.
func (uf *UnionFind) Groups() map[int][]int {
	groups := make(map[int][]int)
	for _, id := range uf.ids {
		root := uf.Find(id)
		groups[root] = append(groups[root], id)
	}
	for root := range groups {
		sort.Ints(groups[root])
	}
	return groups
}
