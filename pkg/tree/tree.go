package tree

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Payload stores the domain fields of a node (amount_transferred, lot_code, ...).
type Payload map[string]any

// Node is one entity in the domain hierarchy.
//
// Children order is significant and preserved through layout. A nil or empty
// Children slice marks a leaf. The zero value is a valid unnamed leaf.
type Node struct {
	Name     string
	Payload  Payload
	Children []*Node

	// Expanded is the expansion the document was authored with. It seeds
	// expand.FromTree and is never changed at runtime.
	Expanded bool
}

// HasChildren reports whether the node has at least one child in the data,
// regardless of whether those children are currently visible.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Label returns the display label. Unnamed nodes render as "?".
func (n *Node) Label() string {
	if n == nil || n.Name == "" {
		return "?"
	}
	return n.Name
}

// Key identifies a node by its position in the tree.
type Key string

// namespace scopes node keys so they never collide with other name-based UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/arbor/node"))

// RootKey is the key of every tree's root node.
var RootKey = KeyFor(nil)

// KeyFor returns the key of the node reached by following child indexes
// from the root. An empty path is the root.
func KeyFor(path []int) Key {
	return Key(uuid.NewSHA1(namespace, []byte(pathString(path))).String())
}

func pathString(path []int) string {
	var b strings.Builder
	b.WriteByte('/')
	for i, p := range path {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}

// WalkFunc is called for every node visited by [Walk]. Returning false skips
// the node's children.
type WalkFunc func(n *Node, path []int, key Key) bool

// Walk visits the tree depth-first in pre-order, children in input order.
// The path slice passed to fn is only valid for the duration of the call.
func Walk(root *Node, fn WalkFunc) {
	if root == nil {
		return
	}
	walk(root, make([]int, 0, 8), fn)
}

func walk(n *Node, path []int, fn WalkFunc) {
	if !fn(n, path, KeyFor(path)) {
		return
	}
	for i, c := range n.Children {
		walk(c, append(path, i), fn)
	}
}

// Index maps every key in the tree to its node.
func Index(root *Node) map[Key]*Node {
	idx := make(map[Key]*Node)
	Walk(root, func(n *Node, _ []int, key Key) bool {
		idx[key] = n
		return true
	})
	return idx
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, []int, Key) bool {
		count++
		return true
	})
	return count
}
