// Package render turns composed diagram scenes into files.
//
// # Overview
//
// Rendering starts from a [diagram.Scene] and is split by concern:
//
//   - [styles]: palettes and per-kind node styles
//   - [sink]: SVG (main view plus minimap), terminal raster and JSON output
//   - [nodelink]: Graphviz DOT export and node-link rendering
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG produced by the sinks using the
// external rsvg-convert tool (from librsvg).
//
//	var buf bytes.Buffer
//	sink.RenderSVG(&buf, scene)
//	pdf, err := render.ToPDF(ctx, buf.Bytes())
//	png, err := render.ToPNG(ctx, buf.Bytes(), 2.0)
//
// [diagram.Scene]: github.com/matzehuels/arbor/pkg/diagram
// [styles]: github.com/matzehuels/arbor/pkg/render/styles
// [sink]: github.com/matzehuels/arbor/pkg/render/sink
// [nodelink]: github.com/matzehuels/arbor/pkg/render/nodelink
package render
