// Package hierarchy builds the visible node hierarchy that layout and
// rendering operate on.
//
// # Overview
//
// [Build] walks a [tree.Node] document breadth-first and wraps every visible
// node in a [Node] that records its key, depth, parent, visible children and
// [Kind]. The result, a [Hierarchy], exposes the nodes in a stable traversal
// order ([Hierarchy.Descendants]) and the parent/child edge set
// ([Hierarchy.Links]).
//
// # Visibility
//
// Without options every node is visible. [WithVisibility] installs a
// predicate deciding, per node, whether its children are shown; when it
// returns false the whole subtree below that node is left out of both the
// node set and the edge set:
//
//	state := expand.FromTree(doc)
//	h := hierarchy.Build(doc, hierarchy.WithVisibility(state.Predicate()))
//
// # Node Kinds
//
// Kinds are decided once, during the build:
//
//   - [KindRoot]: depth 0
//   - [KindBranch]: has children in the data, whether or not they are visible
//   - [KindLeaf]: everything else
//
// # Positions
//
// [Node.Breadth] and [Node.Tier] are zero after Build. Package layout fills
// them in. A Hierarchy belongs to exactly one layout pass; rebuilding it is
// cheap and preferred over mutating positions in place.
package hierarchy
