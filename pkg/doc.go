// Package pkg provides the core libraries for Arbor tree diagrams.
//
// # Overview
//
// Arbor draws hierarchical documents as left-to-right tree diagrams. The
// viewer pans and zooms with an affine viewport, a minimap shows the whole
// tree, and clicking a node expands or collapses its children. The pkg
// directory is organized into four areas:
//
//  1. Model: [tree], [expand], [hierarchy] and [layout] turn a document into
//     positioned nodes.
//  2. Interaction: [viewport] and [diagram] hold the live transform, the
//     expansion state and the composed scene.
//  3. Output: [render] draws scenes as SVG, JSON, DOT, PDF, PNG or text.
//  4. Infrastructure: [pipeline], [cache], [config], [watch],
//     [observability] and [errors].
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML document
//	         ↓
//	    [tree] package (parse, stable node keys)
//	         ↓
//	    [expand] package (which subtrees are open)
//	         ↓
//	    [hierarchy] + [layout] packages (visible tree, tidy positions)
//	         ↓
//	    [diagram] package (scene: nodes, links, transforms, minimap)
//	         ↓
//	    [render/sink] package (SVG, JSON, terminal raster)
//
// # Quick Start
//
// Compose a scene and render it:
//
//	root, err := tree.ReadFile("lots.json")
//	if err != nil {
//	    return err
//	}
//	state := expand.FromTree(root)
//	scene := diagram.Compose(diagram.Snapshot{
//	    Tree:      root,
//	    Expansion: &state,
//	    Transform: viewport.Translate(80, 10),
//	    Width:     800,
//	    Height:    600,
//	}, diagram.DefaultConfig())
//	sink.RenderSVG(os.Stdout, scene)
//
// For interactive use, [diagram.NewSession] wraps the same steps behind
// click, wheel, drag and zoom methods and re-composes after every event.
//
// For caching and multi-format output, use [pipeline.Runner], which the
// arbor CLI is built on.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree
// [expand]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/expand
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/layout
// [viewport]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/viewport
// [diagram]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/config
// [watch]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/watch
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [diagram.NewSession]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/diagram#NewSession
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/pipeline#Runner
package pkg
