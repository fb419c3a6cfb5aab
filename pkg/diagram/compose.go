package diagram

import (
	"math"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// Compose lays out the visible part of snap.Tree and returns the scene for
// the main view and the minimap. It has no side effects.
func Compose(snap Snapshot, cfg Config) Scene {
	scene, _ := ComposeHierarchy(snap, cfg)
	return scene
}

// ComposeHierarchy is Compose that also returns the laid-out hierarchy,
// which is nil when the container is unusable.
func ComposeHierarchy(snap Snapshot, cfg Config) (Scene, *hierarchy.Hierarchy) {
	cfg = cfg.withDefaults()
	if !cfg.usable(snap) {
		return assemble(snap, cfg, nil), nil
	}
	h := Layout(snap, cfg)
	return assemble(snap, cfg, h), h
}

// assemble turns a laid-out hierarchy into a scene. A nil hierarchy or an
// unusable container yields an empty scene.
func assemble(snap Snapshot, cfg Config, h *hierarchy.Hierarchy) Scene {
	scene := Scene{
		Width:      snap.Width,
		Height:     snap.Height,
		Margins:    cfg.Margins,
		Transform:  snap.Transform,
		NodeWidth:  cfg.NodeWidth,
		NodeHeight: cfg.NodeHeight,
	}
	if h == nil || !cfg.usable(snap) {
		scene.Empty = true
		return scene
	}

	scene.Nodes = nodeViews(h)
	scene.Links = linkViews(h)

	overlay, ok := OverlayTransform(snap.Transform, cfg.Margins)
	scene.Minimap = MinimapView{
		Frame:          MinimapFrame(snap.Width, snap.Height, cfg.MinimapScale, cfg.MinimapInset),
		Tree:           cfg.minimapTree(),
		Overlay:        overlay,
		OverlayVisible: ok,
		Scale:          cfg.MinimapScale,
	}
	return scene
}

// Layout builds and positions the visible hierarchy of snap inside the
// container minus the margins.
func Layout(snap Snapshot, cfg Config) *hierarchy.Hierarchy {
	var opts []hierarchy.Option
	if snap.Expansion != nil {
		opts = append(opts, hierarchy.WithVisibility(snap.Expansion.Predicate()))
	}
	h := hierarchy.Build(snap.Tree, opts...)
	layout.Tidy(h, cfg.innerSize(snap.Width, snap.Height))
	return h
}

func nodeViews(h *hierarchy.Hierarchy) []NodeView {
	nodes := h.Descendants()
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		out[i] = NodeView{
			Key:       n.Key,
			Index:     n.Index,
			Label:     n.Data.Label(),
			Kind:      n.Kind,
			Depth:     n.Depth,
			X:         n.Tier,
			Y:         n.Breadth,
			Clickable: n.HasChildren(),
			Expanded:  n.Expanded(),
			Data:      n.Data,
		}
	}
	return out
}

func linkViews(h *hierarchy.Hierarchy) []LinkView {
	links := h.Links()
	out := make([]LinkView, len(links))
	for i, l := range links {
		out[i] = LinkView{
			SourceKey: l.Source.Key,
			TargetKey: l.Target.Key,
			X1:        l.Source.Tier,
			Y1:        l.Source.Breadth,
			X2:        l.Target.Tier,
			Y2:        l.Target.Breadth,
		}
	}
	return out
}

func (c Config) usable(snap Snapshot) bool {
	return snap.Tree != nil && snap.Width >= c.MinUsable && snap.Height >= c.MinUsable
}

func (c Config) innerSize(width, height float64) layout.Size {
	return layout.Size{
		Breadth: max(height-c.Margins.Top-c.Margins.Bottom, 0),
		Tier:    max(width-c.Margins.Left-c.Margins.Right, 0),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinUsable <= 0 {
		c.MinUsable = d.MinUsable
	}
	if c.MinimapScale <= 0 {
		c.MinimapScale = d.MinimapScale
	}
	// Zero is a valid inset; only unusable values fall back.
	if c.MinimapInset < 0 || math.IsNaN(c.MinimapInset) || math.IsInf(c.MinimapInset, 0) {
		c.MinimapInset = d.MinimapInset
	}
	if c.NodeWidth <= 0 {
		c.NodeWidth = d.NodeWidth
	}
	if c.NodeHeight <= 0 {
		c.NodeHeight = d.NodeHeight
	}
	if c.Bounds == (viewport.Bounds{}) {
		c.Bounds = d.Bounds
	}
	return c
}
