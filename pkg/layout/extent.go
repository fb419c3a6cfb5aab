package layout

import "github.com/matzehuels/arbor/pkg/hierarchy"

// Rect is an axis-aligned box in layout coordinates.
type Rect struct {
	MinBreadth, MaxBreadth float64
	MinTier, MaxTier       float64
}

// Extent returns the bounding box of the laid-out nodes. The zero Rect is
// returned for an empty hierarchy.
func Extent(h *hierarchy.Hierarchy) Rect {
	nodes := h.Descendants()
	if len(nodes) == 0 {
		return Rect{}
	}
	r := Rect{
		MinBreadth: nodes[0].Breadth, MaxBreadth: nodes[0].Breadth,
		MinTier: nodes[0].Tier, MaxTier: nodes[0].Tier,
	}
	for _, n := range nodes[1:] {
		r.MinBreadth = min(r.MinBreadth, n.Breadth)
		r.MaxBreadth = max(r.MaxBreadth, n.Breadth)
		r.MinTier = min(r.MinTier, n.Tier)
		r.MaxTier = max(r.MaxTier, n.Tier)
	}
	return r
}
