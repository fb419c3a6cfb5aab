package sink

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/render/styles"
)

const clipID = "zoom-clip"

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	minimap bool
	title   string
}

// WithStyle selects the palette and node shapes. The default is styles.Lots.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutMinimap omits the minimap group and its clip path.
func WithoutMinimap() SVGOption { return func(r *svgRenderer) { r.minimap = false } }

// WithTitle adds a <title> element to the document.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Lots{}, minimap: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG writes scene as a standalone SVG document. An empty scene
// produces an empty document of the scene's size.
func RenderSVG(w io.Writer, scene diagram.Scene, opts ...SVGOption) {
	r := newSVGRenderer(opts...)
	canvas := svg.New(w)
	canvas.Start(px(scene.Width), px(scene.Height))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if scene.Empty {
		canvas.End()
		return
	}

	p := r.style.Palette()
	r.renderDefs(canvas, scene)
	canvas.Roundrect(0, 0, px(scene.Width), px(scene.Height), 14, 14, "fill:"+p.Background)

	canvas.Group(`class="main"`, attr("transform", scene.Transform.String()))
	r.renderTree(canvas, scene)
	canvas.Gend()

	if r.minimap {
		r.renderMinimap(canvas, scene)
	}
	canvas.End()
}

func (r svgRenderer) renderDefs(canvas *svg.SVG, scene diagram.Scene) {
	p := r.style.Palette()
	canvas.Def()
	canvas.LinearGradient(styles.RootGradientID, 0, 0, 0, 100, []svg.Offcolor{
		{Offset: 0, Color: p.Peach, Opacity: 1},
		{Offset: 100, Color: p.Pink, Opacity: 1},
	})
	if r.minimap {
		canvas.ClipPath(attr("id", clipID))
		canvas.Rect(0, 0, px(scene.Width), px(scene.Height))
		canvas.ClipEnd()
	}
	canvas.DefEnd()
}

// renderTree draws links below nodes, both in layout coordinates.
func (r svgRenderer) renderTree(canvas *svg.SVG, scene diagram.Scene) {
	p := r.style.Palette()
	for _, l := range scene.Links {
		canvas.Path(l.Path(), "fill:none;stroke:"+p.LightPurple+";stroke-width:1")
	}
	for _, n := range scene.Nodes {
		r.renderNode(canvas, n)
	}
}

func (r svgRenderer) renderNode(canvas *svg.SVG, n diagram.NodeView) {
	s := r.style.Node(n.Kind)
	canvas.Group(
		attr("transform", fmt.Sprintf("translate(%s, %s)", num(n.X), num(n.Y))),
		attr("data-key", string(n.Key)),
		attr("class", "node "+n.Kind.String()),
	)
	x, y := px(-s.Width/2), px(-s.Height/2)
	w, h := px(s.Width), px(s.Height)
	rect := rectStyle(s)
	if s.RX > 0 {
		canvas.Roundrect(x, y, w, h, px(s.RX), px(s.RX), rect)
	} else {
		canvas.Rect(x, y, w, h, rect)
	}

	text := fmt.Sprintf("fill:%s;font-size:%spx;font-family:%s;pointer-events:none", s.TextColor, num(s.FontSize), s.FontFamily)
	offsets := s.LineOffsets()
	for i, line := range n.Lines() {
		if i >= len(offsets) {
			break
		}
		canvas.Text(px(s.TextX()), px(offsets[i]), line, text)
	}
	canvas.Gend()
}

func rectStyle(s styles.NodeStyle) string {
	out := "fill:" + s.Fill
	if s.Stroke != "" {
		out += fmt.Sprintf(";stroke:%s;stroke-width:%s;stroke-opacity:%s", s.Stroke, num(s.StrokeWidth), num(s.StrokeOpacity))
	}
	if s.StrokeDasharray != "" {
		out += ";stroke-dasharray:" + s.StrokeDasharray
	}
	return out
}

func (r svgRenderer) renderMinimap(canvas *svg.SVG, scene diagram.Scene) {
	p := r.style.Palette()
	mm := scene.Minimap
	w, h := px(scene.Width), px(scene.Height)

	canvas.Group(`class="minimap"`,
		attr("clip-path", "url(#"+clipID+")"),
		attr("transform", mm.Frame.String()))
	canvas.Rect(0, 0, w, h, "fill:"+p.Background2)

	canvas.Gtransform(mm.Tree.String())
	r.renderTree(canvas, scene)
	canvas.Gend()

	if mm.OverlayVisible {
		canvas.Rect(0, 0, w, h,
			attr("class", "overlay"),
			attr("transform", mm.Overlay.String()),
			"fill:white;fill-opacity:0.2;stroke:white;stroke-width:4")
	}
	canvas.Gend()
}

// attr formats a raw attribute; svgo passes strings containing '=' through
// verbatim instead of wrapping them in style="".
func attr(name, value string) string {
	return name + "=" + strconv.Quote(value)
}

func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

func num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
