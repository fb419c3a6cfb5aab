package diagram

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/arbor/pkg/expand"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// Snapshot is everything Compose needs to produce a Scene.
type Snapshot struct {
	Tree *tree.Node
	// Expansion selects the visible subtrees. Nil shows every node.
	Expansion *expand.State
	Transform viewport.Matrix
	Width     float64
	Height    float64
}

// NodeView is one visible node in layout coordinates.
type NodeView struct {
	Key   tree.Key
	Index int
	Label string
	Kind  hierarchy.Kind
	Depth int

	// X and Y are the node's anchor before the group transform.
	X float64
	Y float64

	// Clickable marks nodes whose click toggles expansion.
	Clickable bool
	Expanded  bool

	Data *tree.Node
}

// Lines returns the text lines drawn inside the node box.
func (n NodeView) Lines() []string {
	lot, err := n.Data.Lot()
	if err != nil {
		return []string{"Name: " + n.Label}
	}
	return []string{
		"Name: " + n.Label,
		"Transferred: " + strconv.FormatFloat(lot.AmountTransferred, 'f', -1, 64),
		"Lot Code: " + lot.LotCode,
	}
}

// LinkView is an edge between two visible nodes.
type LinkView struct {
	SourceKey tree.Key
	TargetKey tree.Key
	X1, Y1    float64
	X2, Y2    float64
}

// Path returns the SVG path of a horizontal cubic link: the curve leaves the
// source and enters the target parallel to the depth axis.
func (l LinkView) Path() string {
	mx := (l.X1 + l.X2) / 2
	return fmt.Sprintf("M%s,%sC%s,%s %s,%s %s,%s",
		fnum(l.X1), fnum(l.Y1),
		fnum(mx), fnum(l.Y1),
		fnum(mx), fnum(l.Y2),
		fnum(l.X2), fnum(l.Y2))
}

// Midpoint returns the control x shared by both bezier handles.
func (l LinkView) Midpoint() float64 {
	return (l.X1 + l.X2) / 2
}

// MinimapView describes the overview inset.
type MinimapView struct {
	// Frame scales the overview down and pins it to the bottom-right corner.
	Frame viewport.Matrix
	// Tree offsets the overview tree by the margins.
	Tree viewport.Matrix
	// Overlay places the width x height rectangle showing the main view.
	Overlay        viewport.Matrix
	OverlayVisible bool
	Scale          float64
}

// Scene is the composed, renderer-agnostic picture of a diagram.
type Scene struct {
	// Empty is set when the container is too small to draw anything.
	Empty   bool
	Width   float64
	Height  float64
	Margins Margins

	Nodes []NodeView
	Links []LinkView

	// Transform is applied to the main group.
	Transform viewport.Matrix
	Minimap   MinimapView

	NodeWidth  float64
	NodeHeight float64
}

// Node returns the visible node with key.
func (s Scene) Node(key tree.Key) (NodeView, bool) {
	for _, n := range s.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return NodeView{}, false
}

// Labels returns the node labels in traversal order.
func (s Scene) Labels() []string {
	out := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.Label
	}
	return out
}

// HitTest returns the node whose box contains the screen point p. Later nodes
// win when boxes overlap, matching paint order.
func (s Scene) HitTest(p viewport.Point) (NodeView, bool) {
	if s.Empty {
		return NodeView{}, false
	}
	inv, ok := s.Transform.Invert()
	if !ok {
		return NodeView{}, false
	}
	q := inv.Apply(p)
	hw, hh := s.NodeWidth/2, s.NodeHeight/2
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		n := s.Nodes[i]
		if q.X >= n.X-hw && q.X <= n.X+hw && q.Y >= n.Y-hh && q.Y <= n.Y+hh {
			return n, true
		}
	}
	return NodeView{}, false
}

// ScreenPoint returns where a node's anchor lands on screen.
func (s Scene) ScreenPoint(n NodeView) viewport.Point {
	return s.Transform.Apply(viewport.Point{X: n.X, Y: n.Y})
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
