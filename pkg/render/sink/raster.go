package sink

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// CellKind tells a terminal front end what a cell belongs to.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellLink
	CellRoot
	CellBranch
	CellLeaf
	CellMinimap
	CellMinimapLink
	CellMinimapNode
	CellOverlay
)

// Cell is one character position of a raster.
type Cell struct {
	Rune rune
	Kind CellKind
	// Node is set for cells covered by a node box in the main view.
	Node int
}

// Raster is a scene mapped onto a grid of terminal cells.
type Raster struct {
	Cols, Rows int
	// CellWidth and CellHeight are the scene units covered by one cell.
	CellWidth, CellHeight float64
	cells                 []Cell
}

// RasterOption configures Rasterize.
type RasterOption func(*rasterizer)

type rasterizer struct {
	minimap bool
	labels  bool
}

// WithoutMinimapInset skips the minimap.
func WithoutMinimapInset() RasterOption { return func(r *rasterizer) { r.minimap = false } }

// WithoutLabels draws node boxes without text.
func WithoutLabels() RasterOption { return func(r *rasterizer) { r.labels = false } }

// Rasterize maps scene onto cols x rows cells. The scene's width and height
// are spread evenly over the grid.
func Rasterize(scene diagram.Scene, cols, rows int, opts ...RasterOption) *Raster {
	cfg := rasterizer{minimap: true, labels: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	cols, rows = max(cols, 0), max(rows, 0)
	r := &Raster{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
	for i := range r.cells {
		r.cells[i] = Cell{Rune: ' ', Node: -1}
	}
	if scene.Empty || cols == 0 || rows == 0 {
		return r
	}
	r.CellWidth = scene.Width / float64(cols)
	r.CellHeight = scene.Height / float64(rows)

	for _, l := range scene.Links {
		r.curve(scene.Transform, l, '·', CellLink, nil)
	}
	for i, n := range scene.Nodes {
		r.node(scene, i, n, cfg.labels)
	}
	if cfg.minimap {
		r.minimap(scene)
	}
	return r
}

// At returns the cell at col, row. Out-of-range positions yield an empty cell.
func (r *Raster) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= r.Cols || row >= r.Rows {
		return Cell{Rune: ' ', Node: -1}
	}
	return r.cells[row*r.Cols+col]
}

// Row returns the cells of one row.
func (r *Raster) Row(row int) []Cell {
	if row < 0 || row >= r.Rows {
		return nil
	}
	return r.cells[row*r.Cols : (row+1)*r.Cols]
}

// ScenePoint returns the scene coordinates of the centre of a cell.
func (r *Raster) ScenePoint(col, row int) viewport.Point {
	return viewport.Point{
		X: (float64(col) + 0.5) * r.CellWidth,
		Y: (float64(row) + 0.5) * r.CellHeight,
	}
}

// String renders the raster as plain text, one line per row.
func (r *Raster) String() string {
	var b strings.Builder
	for row := 0; row < r.Rows; row++ {
		for _, c := range r.Row(row) {
			b.WriteRune(c.Rune)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Raster) set(col, row int, c Cell) {
	if col < 0 || row < 0 || col >= r.Cols || row >= r.Rows {
		return
	}
	r.cells[row*r.Cols+col] = c
}

func (r *Raster) cellOf(p viewport.Point) (int, int) {
	return int(math.Floor(p.X / r.CellWidth)), int(math.Floor(p.Y / r.CellHeight))
}

// box is a cell rectangle, inclusive on all sides.
type box struct{ c0, r0, c1, r1 int }

func (r *Raster) boxOf(m viewport.Matrix, x0, y0, x1, y1 float64) box {
	a := m.Apply(viewport.Point{X: x0, Y: y0})
	b := m.Apply(viewport.Point{X: x1, Y: y1})
	c0, r0 := r.cellOf(viewport.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)})
	c1, r1 := r.cellOf(viewport.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)})
	return box{c0, r0, c1, r1}
}

func (b box) contains(col, row int) bool {
	return col >= b.c0 && col <= b.c1 && row >= b.r0 && row <= b.r1
}

// curve plots a link's cubic bezier through m. Cells outside clip are skipped
// when clip is non-nil; occupied cells are never overwritten.
func (r *Raster) curve(m viewport.Matrix, l diagram.LinkView, glyph rune, kind CellKind, clip *box) {
	p0 := m.Apply(viewport.Point{X: l.X1, Y: l.Y1})
	p1 := m.Apply(viewport.Point{X: l.Midpoint(), Y: l.Y1})
	p2 := m.Apply(viewport.Point{X: l.Midpoint(), Y: l.Y2})
	p3 := m.Apply(viewport.Point{X: l.X2, Y: l.Y2})

	span := math.Abs(p3.X-p0.X)/r.CellWidth + math.Abs(p3.Y-p0.Y)/r.CellHeight
	steps := int(math.Min(math.Max(span*2, 8), 4096))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		p := viewport.Point{
			X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
			Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
		}
		col, row := r.cellOf(p)
		if clip != nil && !clip.contains(col, row) {
			continue
		}
		if cur := r.At(col, row); cur.Kind != CellEmpty && cur.Kind != CellMinimap {
			continue
		}
		r.set(col, row, Cell{Rune: glyph, Kind: kind, Node: -1})
	}
}

var borders = map[hierarchy.Kind][6]rune{
	hierarchy.KindRoot:   {'╭', '╮', '╰', '╯', '─', '│'},
	hierarchy.KindBranch: {'┌', '┐', '└', '┘', '─', '│'},
	hierarchy.KindLeaf:   {'╭', '╮', '╰', '╯', '┄', '┆'},
}

func nodeKind(k hierarchy.Kind) CellKind {
	switch k {
	case hierarchy.KindRoot:
		return CellRoot
	case hierarchy.KindBranch:
		return CellBranch
	default:
		return CellLeaf
	}
}

func (r *Raster) node(scene diagram.Scene, idx int, n diagram.NodeView, labels bool) {
	hw, hh := scene.NodeWidth/2, scene.NodeHeight/2
	b := r.boxOf(scene.Transform, n.X-hw, n.Y-hh, n.X+hw, n.Y+hh)
	kind := nodeKind(n.Kind)

	// Too small for a frame: a single marker.
	if b.c1-b.c0 < 2 || b.r1-b.r0 < 1 {
		col, row := r.cellOf(scene.ScreenPoint(n))
		r.set(col, row, Cell{Rune: '●', Kind: kind, Node: idx})
		return
	}

	g := borders[n.Kind]
	for row := b.r0; row <= b.r1; row++ {
		for col := b.c0; col <= b.c1; col++ {
			ch := ' '
			switch {
			case row == b.r0 && col == b.c0:
				ch = g[0]
			case row == b.r0 && col == b.c1:
				ch = g[1]
			case row == b.r1 && col == b.c0:
				ch = g[2]
			case row == b.r1 && col == b.c1:
				ch = g[3]
			case row == b.r0 || row == b.r1:
				ch = g[4]
			case col == b.c0 || col == b.c1:
				ch = g[5]
			}
			r.set(col, row, Cell{Rune: ch, Kind: kind, Node: idx})
		}
	}
	if !labels {
		return
	}

	inner := b.c1 - b.c0 - 1
	lines := n.Lines()
	if b.r1-b.r0-1 < len(lines) {
		lines = []string{n.Label}
	}
	top := b.r0 + 1 + max((b.r1-b.r0-1-len(lines))/2, 0)
	for i, line := range lines {
		row := top + i
		if row >= b.r1 {
			break
		}
		r.text(b.c0+1, row, runewidth.Truncate(line, inner, "…"), kind, idx)
	}
}

func (r *Raster) text(col, row int, s string, kind CellKind, idx int) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.set(col, row, Cell{Rune: ch, Kind: kind, Node: idx})
		col += w
	}
}

func (r *Raster) minimap(scene diagram.Scene) {
	mm := scene.Minimap
	frame := r.boxOf(mm.Frame, 0, 0, scene.Width, scene.Height)
	for row := frame.r0; row <= frame.r1; row++ {
		for col := frame.c0; col <= frame.c1; col++ {
			r.set(col, row, Cell{Rune: ' ', Kind: CellMinimap, Node: -1})
		}
	}

	tree := mm.Frame.Multiply(mm.Tree)
	for _, l := range scene.Links {
		r.curve(tree, l, '·', CellMinimapLink, &frame)
	}
	for _, n := range scene.Nodes {
		col, row := r.cellOf(tree.Apply(viewport.Point{X: n.X, Y: n.Y}))
		if frame.contains(col, row) {
			r.set(col, row, Cell{Rune: '▪', Kind: CellMinimapNode, Node: -1})
		}
	}

	if !mm.OverlayVisible {
		return
	}
	o := r.boxOf(mm.Frame.Multiply(mm.Overlay), 0, 0, scene.Width, scene.Height)
	for row := max(o.r0, frame.r0); row <= min(o.r1, frame.r1); row++ {
		for col := max(o.c0, frame.c0); col <= min(o.c1, frame.c1); col++ {
			edgeRow := row == o.r0 || row == o.r1
			edgeCol := col == o.c0 || col == o.c1
			switch {
			case edgeRow && edgeCol:
				r.set(col, row, Cell{Rune: '+', Kind: CellOverlay, Node: -1})
			case edgeRow:
				r.set(col, row, Cell{Rune: '-', Kind: CellOverlay, Node: -1})
			case edgeCol:
				r.set(col, row, Cell{Rune: '|', Kind: CellOverlay, Node: -1})
			}
		}
	}
}
