// Package nodelink renders the visible hierarchy as a Graphviz diagram.
//
// # Overview
//
// This is the static counterpart of the interactive diagram: the same
// visible nodes and links, laid out by Graphviz instead of the tidy tree
// engine. It is useful for documents that need a conventional node-link
// figure or for feeding the tree into other Graphviz tooling.
//
// # Usage
//
//	h := hierarchy.Build(root, hierarchy.WithVisibility(state.Predicate()))
//	dot := nodelink.ToDOT(h, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT uses left-to-right layout (rankdir=LR) so the figure
// grows in the same direction as the diagram. Roots are filled, branches
// are plain boxes and leaves are dashed rounded boxes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
