// Package sink turns a composed [diagram.Scene] into output formats.
//
// # SVG
//
// [RenderSVG] draws the main view and the minimap inset with
// github.com/ajstarks/svgo. The document mirrors what an interactive client
// shows for the same scene: a rounded background, the main group carrying the
// viewport matrix, and a clipped minimap group pinned to the bottom-right
// corner with the viewport overlay on top.
//
//	scene := diagram.Compose(snap, diagram.DefaultConfig())
//	sink.RenderSVG(w, scene, sink.WithStyle(styles.Paper{}))
//
// # Terminal Raster
//
// [Rasterize] maps the same scene onto a grid of terminal cells. Each cell
// records a rune and a [CellKind] so callers can colour the grid however
// they like; the explore command styles it with lipgloss.
//
// # JSON
//
// [RenderJSON] serializes the scene (nodes, links, transforms) for external
// tools.
package sink
