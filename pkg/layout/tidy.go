package layout

import "github.com/matzehuels/arbor/pkg/hierarchy"

// Size is the drawable area of a layout pass.
type Size struct {
	Breadth float64 // vertical extent (screen height minus margins)
	Tier    float64 // horizontal extent (screen width minus margins)
}

// Separation returns the minimum distance between two adjacent nodes on
// the breadth axis, before scaling.
type Separation func(a, b *hierarchy.Node) float64

// DefaultSeparation keeps siblings one unit apart and cousins two.
func DefaultSeparation(a, b *hierarchy.Node) float64 {
	if a.Parent == b.Parent {
		return 1
	}
	return 2
}

// Option configures Tidy.
type Option func(*config)

type config struct {
	separation Separation
}

// WithSeparation overrides DefaultSeparation.
func WithSeparation(fn Separation) Option {
	return func(c *config) { c.separation = fn }
}

// wnode carries the per-node state of Buchheim's algorithm.
type wnode struct {
	node     *hierarchy.Node
	parent   *wnode
	children []*wnode
	ancestor *wnode // default ancestor (A)
	a        *wnode // ancestor
	thread   *wnode
	prelim   float64
	mod      float64
	change   float64
	shift    float64
	number   int
}

// Tidy assigns Breadth and Tier to every node of h. An empty hierarchy is left untouched.
func Tidy(h *hierarchy.Hierarchy, size Size, opts ...Option) {
	root := h.Root()
	if root == nil {
		return
	}
	cfg := config{separation: DefaultSeparation}
	for _, opt := range opts {
		opt(&cfg)
	}
	t := tidier{sep: cfg.separation}

	w := buildWork(root)
	t.eachAfter(w, t.firstWalk)
	w.parent.mod = -w.prelim
	t.eachBefore(w, secondWalk)

	scale(h, size, cfg.separation)
}

type tidier struct {
	sep Separation
}

func buildWork(root *hierarchy.Node) *wnode {
	w := &wnode{node: root}
	w.a = w
	stack := []*wnode{w}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(n.node.Children) == 0 {
			continue
		}
		n.children = make([]*wnode, len(n.node.Children))
		for i, c := range n.node.Children {
			child := &wnode{node: c, parent: n, number: i}
			child.a = child
			n.children[i] = child
			stack = append(stack, child)
		}
	}
	// Sentinel parent so the root is handled like any first child.
	w.parent = &wnode{children: []*wnode{w}}
	w.parent.a = w.parent
	return w
}

func (t tidier) eachAfter(w *wnode, fn func(*wnode)) {
	for _, c := range w.children {
		t.eachAfter(c, fn)
	}
	fn(w)
}

func (t tidier) eachBefore(w *wnode, fn func(*wnode)) {
	fn(w)
	for _, c := range w.children {
		t.eachBefore(c, fn)
	}
}

func (t tidier) separation(a, b *wnode) float64 {
	return t.sep(a.node, b.node)
}

func (t tidier) firstWalk(v *wnode) {
	siblings := v.parent.children
	var w *wnode
	if v.number > 0 {
		w = siblings[v.number-1]
	}
	if len(v.children) > 0 {
		executeShifts(v)
		midpoint := (v.children[0].prelim + v.children[len(v.children)-1].prelim) / 2
		if w != nil {
			v.prelim = w.prelim + t.separation(v, w)
			v.mod = v.prelim - midpoint
		} else {
			v.prelim = midpoint
		}
	} else if w != nil {
		v.prelim = w.prelim + t.separation(v, w)
	}
	ancestor := v.parent.ancestor
	if ancestor == nil {
		ancestor = siblings[0]
	}
	v.parent.ancestor = t.apportion(v, w, ancestor)
}

func secondWalk(v *wnode) {
	v.node.Breadth = v.prelim + v.parent.mod
	v.mod += v.parent.mod
}

func (t tidier) apportion(v, w, ancestor *wnode) *wnode {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v
		shift := vim.prelim + sim - vip.prelim - sip + t.separation(vim, vip)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}
	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.mod += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.mod += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *wnode) *wnode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *wnode) *wnode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

func moveSubtree(wm, wp *wnode, shift float64) {
	change := shift / float64(wp.number-wm.number)
	wp.change -= change
	wp.shift += shift
	wm.change += change
	wp.prelim += shift
	wp.mod += shift
}

func executeShifts(v *wnode) {
	shift, change := 0.0, 0.0
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

func nextAncestor(vim, v, ancestor *wnode) *wnode {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}

// scale maps the unit-spaced drawing onto size.
func scale(h *hierarchy.Hierarchy, size Size, sep Separation) {
	root := h.Root()
	left, right, bottom := root, root, root
	h.EachBefore(func(n *hierarchy.Node) {
		if n.Breadth < left.Breadth {
			left = n
		}
		if n.Breadth > right.Breadth {
			right = n
		}
		if n.Depth > bottom.Depth {
			bottom = n
		}
	})

	s := 1.0
	if left != right {
		s = sep(left, right) / 2
	}
	tx := s - left.Breadth
	kx := size.Breadth / (right.Breadth + s + tx)
	depth := float64(bottom.Depth)
	if depth == 0 {
		depth = 1
	}
	ky := size.Tier / depth

	h.EachBefore(func(n *hierarchy.Node) {
		n.Breadth = (n.Breadth + tx) * kx
		n.Tier = float64(n.Depth) * ky
	})
}
