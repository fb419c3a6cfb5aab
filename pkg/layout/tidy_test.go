package layout

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
)

func build(root *tree.Node) *hierarchy.Hierarchy {
	return hierarchy.Build(root)
}

func find(t *testing.T, h *hierarchy.Hierarchy, path ...int) *hierarchy.Node {
	t.Helper()
	n, ok := h.Find(tree.KeyFor(path))
	if !ok {
		t.Fatalf("node %v not visible", path)
	}
	return n
}

func TestTidySingleNode(t *testing.T) {
	h := build(&tree.Node{Name: "solo"})
	Tidy(h, Size{Breadth: 580, Tier: 840})
	root := h.Root()
	if root.Breadth != 290 || root.Tier != 0 {
		t.Errorf("root at (%v, %v), want (290, 0)", root.Breadth, root.Tier)
	}
}

func TestTidyEmpty(t *testing.T) {
	h := build(nil)
	Tidy(h, Size{Breadth: 100, Tier: 100})
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestTidyThreeNodes(t *testing.T) {
	h := build(&tree.Node{Name: "A", Children: []*tree.Node{{Name: "B"}, {Name: "C"}}})
	Tidy(h, Size{Breadth: 580, Tier: 840})

	tests := []struct {
		name          string
		path          []int
		breadth, tier float64
	}{
		{"A", nil, 290, 0},
		{"B", []int{0}, 145, 840},
		{"C", []int{1}, 435, 840},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := find(t, h, tt.path...)
			if n.Breadth != tt.breadth || n.Tier != tt.tier {
				t.Errorf("%s at (%v, %v), want (%v, %v)", tt.name, n.Breadth, n.Tier, tt.breadth, tt.tier)
			}
		})
	}
}

func TestTidyCousinsSeparation(t *testing.T) {
	h := build(&tree.Node{Name: "A", Children: []*tree.Node{
		{Name: "B", Children: []*tree.Node{{Name: "D"}}},
		{Name: "C", Children: []*tree.Node{{Name: "E"}}},
	}})
	Tidy(h, Size{Breadth: 100, Tier: 100})

	// Cousins D and E need two units, which pushes B and C apart as well.
	tests := []struct {
		name    string
		path    []int
		breadth float64
	}{
		{"A", nil, 50},
		{"B", []int{0}, 25},
		{"C", []int{1}, 75},
		{"D", []int{0, 0}, 25},
		{"E", []int{1, 0}, 75},
	}
	for _, tt := range tests {
		if n := find(t, h, tt.path...); n.Breadth != tt.breadth {
			t.Errorf("%s breadth = %v, want %v", tt.name, n.Breadth, tt.breadth)
		}
	}
	if d := find(t, h, 0, 0); d.Tier != 100 {
		t.Errorf("D tier = %v, want 100", d.Tier)
	}
}

func TestTidyTiers(t *testing.T) {
	h := build(&tree.Node{Name: "A", Children: []*tree.Node{
		{Name: "B", Children: []*tree.Node{{Name: "C", Children: []*tree.Node{{Name: "D"}}}}},
	}})
	Tidy(h, Size{Breadth: 90, Tier: 300})
	for _, n := range h.Descendants() {
		if want := float64(n.Depth) * 100; n.Tier != want {
			t.Errorf("%s tier = %v, want %v", n.Data.Name, n.Tier, want)
		}
	}
}

func TestExtent(t *testing.T) {
	h := build(&tree.Node{Name: "A", Children: []*tree.Node{{Name: "B"}, {Name: "C"}}})
	Tidy(h, Size{Breadth: 580, Tier: 840})
	r := Extent(h)
	want := Rect{MinBreadth: 145, MaxBreadth: 435, MinTier: 0, MaxTier: 840}
	if r != want {
		t.Errorf("Extent = %+v, want %+v", r, want)
	}
	if (Extent(build(nil)) != Rect{}) {
		t.Error("empty Extent should be zero")
	}
}

func TestWithSeparation(t *testing.T) {
	h := build(&tree.Node{Name: "A", Children: []*tree.Node{{Name: "B"}, {Name: "C"}, {Name: "D"}}})
	Tidy(h, Size{Breadth: 300, Tier: 10}, WithSeparation(func(a, b *hierarchy.Node) float64 { return 3 }))
	b, c, d := find(t, h, 0), find(t, h, 1), find(t, h, 2)
	if math.Abs((c.Breadth-b.Breadth)-(d.Breadth-c.Breadth)) > 1e-9 {
		t.Errorf("uneven spacing: %v, %v, %v", b.Breadth, c.Breadth, d.Breadth)
	}
}

func genTree(t *rapid.T, depth int) *tree.Node {
	n := &tree.Node{Name: "n"}
	if depth == 0 {
		return n
	}
	for range rapid.IntRange(0, 4).Draw(t, "children") {
		n.Children = append(n.Children, genTree(t, depth-1))
	}
	return n
}

func genSize(t *rapid.T) Size {
	return Size{
		Breadth: rapid.Float64Range(1, 2000).Draw(t, "breadth"),
		Tier:    rapid.Float64Range(1, 2000).Draw(t, "tier"),
	}
}

func snapshot(h *hierarchy.Hierarchy) [][2]float64 {
	out := make([][2]float64, h.Len())
	for i, n := range h.Descendants() {
		out[i] = [2]float64{n.Breadth, n.Tier}
	}
	return out
}

func TestTidyIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := build(genTree(t, 4))
		size := genSize(t)
		Tidy(h, size)
		first := snapshot(h)
		Tidy(h, size)
		second := snapshot(h)
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("node %d moved from %v to %v", i, first[i], second[i])
			}
		}
	})
}

func TestTidyInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := build(genTree(t, 4))
		size := genSize(t)
		Tidy(h, size)
		const eps = 1e-6

		for _, n := range h.Descendants() {
			if n.Breadth < -eps || n.Breadth > size.Breadth+eps {
				t.Fatalf("breadth %v outside [0, %v]", n.Breadth, size.Breadth)
			}
			if len(n.Children) == 0 {
				continue
			}
			for i := 1; i < len(n.Children); i++ {
				if !(n.Children[i].Breadth > n.Children[i-1].Breadth) {
					t.Fatalf("children out of order: %v then %v", n.Children[i-1].Breadth, n.Children[i].Breadth)
				}
			}
			first, last := n.Children[0], n.Children[len(n.Children)-1]
			if mid := (first.Breadth + last.Breadth) / 2; math.Abs(n.Breadth-mid) > eps*size.Breadth {
				t.Fatalf("parent at %v, children midpoint %v", n.Breadth, mid)
			}
		}

		// Nodes on the same level never overlap.
		levels := make(map[int][]float64)
		for _, n := range h.Descendants() {
			levels[n.Depth] = append(levels[n.Depth], n.Breadth)
		}
		for depth, row := range levels {
			for i := 1; i < len(row); i++ {
				if !(row[i] > row[i-1]) {
					t.Fatalf("level %d overlaps: %v", depth, row)
				}
			}
		}
	})
}
