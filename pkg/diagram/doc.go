// Package diagram composes hierarchy, layout and viewport state into a
// renderable scene with a synchronized minimap.
//
// # Overview
//
// Rendering is a pure function. [Compose] takes a [Snapshot] (tree,
// expansion state, viewport transform, container size) and returns a [Scene]
// holding every visible node and link in layout coordinates, the transform
// of the main group, and the three transforms of the minimap: the frame that
// shrinks the overview into the bottom-right corner, the margin offset of the
// overview tree, and the overlay marking what the main view currently shows.
//
// A container narrower or shorter than [Config.MinUsable] composes to an empty
// scene regardless of the tree.
//
// # Interactive Sessions
//
// A [Session] owns the only mutable state of an interactive diagram: one
// [viewport.Controller] and the current [expand.State]. Every event (zoom,
// drag, click, reset, resize) updates that state and then pushes a freshly
// composed Scene to all subscribers before returning, so no consumer can
// observe a transform or expansion set that has already been superseded.
//
//	s := diagram.NewSession(doc, 1024, 768, diagram.WithOnActivate(func(k tree.Key, n *tree.Node) {
//	    fmt.Println("activated", n.Name)
//	}))
//	s.Subscribe(func(sc diagram.Scene) { draw(sc) })
//	s.Click(viewport.Point{X: 80, Y: 384})
//
// Expanding or collapsing a node rebuilds the hierarchy and re-runs layout
// but never touches the viewport transform.
//
// # Minimap Overlay
//
// The overlay is the inverse of the main transform with the layout margins
// appended as a translation: Translate(left, top) x Invert(T). For the
// configured initial transform (a pure margin offset) the overlay is the
// identity and covers the whole overview. A singular T yields an invisible,
// zero-size overlay instead of an error.
package diagram
