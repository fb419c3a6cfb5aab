package hierarchy

import "github.com/matzehuels/arbor/pkg/tree"

// Kind classifies how a node is drawn.
type Kind int

const (
	// KindLeaf is a node without children in the data.
	KindLeaf Kind = iota
	// KindBranch is a non-root node with children in the data.
	KindBranch
	// KindRoot is the hierarchy's root.
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBranch:
		return "branch"
	default:
		return "leaf"
	}
}

// Node is a visible node plus the geometry assigned by layout.
type Node struct {
	Key      tree.Key
	Data     *tree.Node
	Depth    int
	Index    int // position in Descendants
	Kind     Kind
	Parent   *Node
	Children []*Node

	// Breadth is the position along the sibling axis (screen y).
	Breadth float64
	// Tier is the position along the depth axis (screen x).
	Tier float64
}

// HasChildren reports whether the underlying data node has children,
// visible or not. Only such nodes react to expand/collapse.
func (n *Node) HasChildren() bool {
	return n.Data.HasChildren()
}

// Expanded reports whether the node's children are part of the hierarchy.
func (n *Node) Expanded() bool {
	return len(n.Children) > 0
}

// Link connects a node to one of its visible children.
type Link struct {
	Source *Node
	Target *Node
}

// Hierarchy is the visible part of a tree, in breadth-first order.
type Hierarchy struct {
	root  *Node
	nodes []*Node
	links []Link
	byKey map[tree.Key]*Node
}

// Visibility decides whether a node's children are visible.
type Visibility func(key tree.Key, n *tree.Node) bool

// Option configures Build.
type Option func(*builder)

type builder struct {
	visible Visibility
}

// WithVisibility hides the children of every node for which fn returns false.
func WithVisibility(fn Visibility) Option {
	return func(b *builder) { b.visible = fn }
}

// Build derives the visible hierarchy of root. A nil root yields an empty hierarchy.
func Build(root *tree.Node, opts ...Option) *Hierarchy {
	b := builder{}
	for _, opt := range opts {
		opt(&b)
	}

	h := &Hierarchy{byKey: make(map[tree.Key]*Node)}
	if root == nil {
		return h
	}

	type item struct {
		node *Node
		path []int
	}

	h.root = &Node{Key: tree.RootKey, Data: root, Kind: KindRoot}
	queue := []item{{node: h.root}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		n := it.node
		n.Index = len(h.nodes)
		h.nodes = append(h.nodes, n)
		h.byKey[n.Key] = n

		if !n.Data.HasChildren() {
			continue
		}
		if b.visible != nil && !b.visible(n.Key, n.Data) {
			continue
		}

		n.Children = make([]*Node, len(n.Data.Children))
		for i, c := range n.Data.Children {
			path := make([]int, len(it.path)+1)
			copy(path, it.path)
			path[len(it.path)] = i

			child := &Node{
				Key:    tree.KeyFor(path),
				Data:   c,
				Depth:  n.Depth + 1,
				Kind:   KindLeaf,
				Parent: n,
			}
			if c.HasChildren() {
				child.Kind = KindBranch
			}
			n.Children[i] = child
			h.links = append(h.links, Link{Source: n, Target: child})
			queue = append(queue, item{node: child, path: path})
		}
	}
	return h
}

// Root returns the root node, or nil for an empty hierarchy.
func (h *Hierarchy) Root() *Node { return h.root }

// Descendants returns every visible node in breadth-first order, root first.
func (h *Hierarchy) Descendants() []*Node { return h.nodes }

// Links returns the parent/child edges in breadth-first order of their targets.
func (h *Hierarchy) Links() []Link { return h.links }

// Len returns the number of visible nodes.
func (h *Hierarchy) Len() int { return len(h.nodes) }

// Find returns the visible node with key.
func (h *Hierarchy) Find(key tree.Key) (*Node, bool) {
	n, ok := h.byKey[key]
	return n, ok
}

// Height returns the maximum depth of any visible node, 0 for a lone root.
func (h *Hierarchy) Height() int {
	deepest := 0
	for _, n := range h.nodes {
		if n.Depth > deepest {
			deepest = n.Depth
		}
	}
	return deepest
}

// EachBefore calls fn for every node in pre-order (parents before children).
func (h *Hierarchy) EachBefore(fn func(*Node)) {
	if h.root == nil {
		return
	}
	stack := []*Node{h.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// EachAfter calls fn for every node in post-order (children before parents).
func (h *Hierarchy) EachAfter(fn func(*Node)) {
	if h.root == nil {
		return
	}
	var visit func(*Node)
	visit = func(n *Node) {
		for _, c := range n.Children {
			visit(c)
		}
		fn(n)
	}
	visit(h.root)
}
