package layout

import (
	"testing"

	"github.com/MeKo-Tech/declutter/internal/geometry"
)

func TestProcessKeepsNonOverlapping(t *testing.T) {
	r := NewResolver(DefaultOptions())
	in := []Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9},
		{ID: 2, Label: "text", BBox: geometry.NewBBox(5, 0, 15, 10), Confidence: 0.8},
	}
	// IoU 1/3, containment 0.5: below default thresholds, no merge.
	out := r.Process(in)
	if len(out) != 2 {
		t.Fatalf("expected both clusters to survive, got %d", len(out))
	}
}

func TestProcessMergesContainedCluster(t *testing.T) {
	r := NewResolver(DefaultOptions())
	in := []Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9,
			Cells: []TextCell{{Text: "outer", BBox: geometry.NewBBox(0, 0, 10, 2)}}},
		{ID: 2, Label: "text", BBox: geometry.NewBBox(2, 2, 8, 8), Confidence: 0.8,
			Cells: []TextCell{{Text: "inner", BBox: geometry.NewBBox(2, 2, 8, 4)}}},
	}
	out := r.Process(in)
	if len(out) != 1 {
		t.Fatalf("expected contained cluster to merge, got %d clusters", len(out))
	}
	if out[0].ID != 1 {
		t.Fatalf("expected larger cluster 1 to survive, got %d", out[0].ID)
	}
	if len(out[0].Cells) != 2 {
		t.Fatalf("expected both cells in the survivor, got %d", len(out[0].Cells))
	}
}

func TestProcessMergesAcrossLabels(t *testing.T) {
	r := NewResolver(DefaultOptions())
	in := []Cluster{
		{ID: 10, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9,
			Cells: []TextCell{{Text: "body", BBox: geometry.NewBBox(0, 0, 10, 2)}}},
		{ID: 21, Label: "list_item", BBox: geometry.NewBBox(0.1, 0.1, 10, 10), Confidence: 0.6,
			Cells: []TextCell{{Text: "item", BBox: geometry.NewBBox(0, 2, 10, 4)}}},
	}
	out := r.Process(in)
	if len(out) != 1 {
		t.Fatalf("overlapping clusters with different labels must still merge, got %d", len(out))
	}
	if len(out[0].Cells) != 2 {
		t.Fatalf("expected merged cells, got %d", len(out[0].Cells))
	}
}

func TestProcessListItemRuleDecidesSurvivor(t *testing.T) {
	r := NewResolver(DefaultOptions())
	// Without the list-item rule the low-confidence item would be rejected
	// against the much more confident text block; with it, the item stays
	// eligible, comes first by id, and the smaller text cannot displace it.
	in := []Cluster{
		{ID: 5, Label: "list_item", BBox: geometry.NewBBox(0, 0, 10, 10.2), Confidence: 0.5},
		{ID: 10, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9},
	}
	out := r.Process(in)
	if len(out) != 1 {
		t.Fatalf("expected merge, got %d clusters", len(out))
	}
	if out[0].ID != 5 || out[0].Label != "list_item" {
		t.Fatalf("expected list_item 5 to survive, got %d (%s)", out[0].ID, out[0].Label)
	}
}

func TestProcessCategoriesResolvedIndependently(t *testing.T) {
	r := NewResolver(DefaultOptions())
	// A picture and a table on the exact same box as a text block: three
	// different categories, so nothing merges.
	box := geometry.NewBBox(0, 0, 10, 10)
	in := []Cluster{
		{ID: 1, Label: "text", BBox: box, Confidence: 0.9},
		{ID: 2, Label: "Picture", BBox: box, Confidence: 0.9},
		{ID: 3, Label: "Table", BBox: box, Confidence: 0.9},
	}
	out := r.Process(in)
	if len(out) != 3 {
		t.Fatalf("different categories never merge, got %d clusters", len(out))
	}
	// Output order is regular, then picture, then wrapper.
	if out[0].ID != 1 || out[1].ID != 2 || out[2].ID != 3 {
		t.Fatalf("unexpected category order: %d %d %d", out[0].ID, out[1].ID, out[2].ID)
	}
	if out[1].Label != "picture" || out[2].Label != "table" {
		t.Fatalf("labels must be normalized on output: %q %q", out[1].Label, out[2].Label)
	}
}

func TestProcessOutputIDsSubsetOfInput(t *testing.T) {
	r := NewResolver(DefaultOptions())
	in := []Cluster{
		{ID: 4, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9},
		{ID: 9, Label: "text", BBox: geometry.NewBBox(1, 1, 9, 9), Confidence: 0.5},
		{ID: 12, Label: "text", BBox: geometry.NewBBox(50, 50, 60, 60), Confidence: 0.7},
	}
	inIDs := map[int]bool{4: true, 9: true, 12: true}
	for _, c := range r.Process(in) {
		if !inIDs[c.ID] {
			t.Fatalf("output id %d not present in input", c.ID)
		}
	}
}

func TestProcessSingletonPreservesCellOrder(t *testing.T) {
	r := NewResolver(DefaultOptions())
	// Cells deliberately out of reading order; a cluster that merges with
	// nothing keeps them as delivered.
	in := []Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 30), Confidence: 0.9,
			Cells: []TextCell{
				{Text: "last", BBox: geometry.NewBBox(0, 20, 10, 25)},
				{Text: "first", BBox: geometry.NewBBox(0, 0, 10, 5)},
			}},
	}
	out := r.Process(in)
	if len(out) != 1 || len(out[0].Cells) != 2 {
		t.Fatalf("unexpected result shape")
	}
	if out[0].Cells[0].Text != "last" {
		t.Fatalf("singleton cluster cell order must be preserved, got %q first", out[0].Cells[0].Text)
	}
}

func TestProcessMergedCellsDedupedAndSorted(t *testing.T) {
	r := NewResolver(DefaultOptions())
	shared := TextCell{Text: "shared", BBox: geometry.NewBBox(0, 10, 10, 12)}
	in := []Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 20), Confidence: 0.9,
			Cells: []TextCell{shared, {Text: "top", BBox: geometry.NewBBox(0, 0, 10, 2)}}},
		{ID: 2, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 19), Confidence: 0.8,
			Cells: []TextCell{shared, {Text: "bottom", BBox: geometry.NewBBox(0, 15, 10, 18)}}},
	}
	out := r.Process(in)
	if len(out) != 1 {
		t.Fatalf("expected merge, got %d clusters", len(out))
	}
	cells := out[0].Cells
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells after dedup, got %d", len(cells))
	}
	want := []string{"top", "shared", "bottom"}
	for i, w := range want {
		if cells[i].Text != w {
			t.Fatalf("cell %d: expected %q, got %q", i, w, cells[i].Text)
		}
	}
}

func TestProcessEmptyInput(t *testing.T) {
	r := NewResolver(DefaultOptions())
	if out := r.Process(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d clusters", len(out))
	}
}

func TestProcessPage(t *testing.T) {
	r := NewResolver(DefaultOptions())
	p := Page{Clusters: []Cluster{
		{ID: 1, Label: "Section-header", BBox: geometry.NewBBox(0, 0, 10, 2), Confidence: 0.9},
	}}
	out := r.ProcessPage(p)
	if len(out.Clusters) != 1 || out.Clusters[0].Label != "section_header" {
		t.Fatalf("unexpected page result: %+v", out)
	}
}

func TestProcessIdempotent(t *testing.T) {
	r := NewResolver(DefaultOptions())
	in := []Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 10, 10), Confidence: 0.9,
			Cells: []TextCell{{Text: "a", BBox: geometry.NewBBox(0, 0, 10, 2)}}},
		{ID: 2, Label: "text", BBox: geometry.NewBBox(1, 1, 9, 9), Confidence: 0.5,
			Cells: []TextCell{{Text: "b", BBox: geometry.NewBBox(1, 1, 9, 3)}}},
		{ID: 3, Label: "picture", BBox: geometry.NewBBox(40, 40, 60, 60), Confidence: 0.8},
	}
	once := r.Process(in)
	twice := r.Process(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed cluster count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID || once[i].Label != twice[i].Label {
			t.Fatalf("second pass changed cluster %d", i)
		}
		if len(once[i].Cells) != len(twice[i].Cells) {
			t.Fatalf("second pass changed cells of cluster %d", once[i].ID)
		}
	}
}

func TestProcessTransitiveGroup(t *testing.T) {
	r := NewResolver(DefaultOptions())
	// A contains B, B contains C, but A and C overlap only through B: the
	// union-find still collapses all three into one group.
	in := []Cluster{
		{ID: 1, Label: "text", BBox: geometry.NewBBox(0, 0, 20, 20), Confidence: 0.9},
		{ID: 2, Label: "text", BBox: geometry.NewBBox(8, 8, 20, 20), Confidence: 0.8},
		{ID: 3, Label: "text", BBox: geometry.NewBBox(12, 12, 20, 20), Confidence: 0.7},
	}
	out := r.Process(in)
	if len(out) != 1 {
		t.Fatalf("expected transitive merge into 1 cluster, got %d", len(out))
	}
}
