package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/render/styles"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the payload in node labels. When false, only the
	// node name is shown.
	Detailed bool
	// Style supplies the colours. Nil uses styles.Lots.
	Style styles.Style
}

// ToDOT converts the visible part of a hierarchy to Graphviz DOT.
func ToDOT(h *hierarchy.Hierarchy, opts Options) string {
	style := opts.Style
	if style == nil {
		style = styles.Lots{}
	}
	p := style.Palette()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", p.Background)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"filled\", fillcolor=%q, fontname=\"Arial\", fontsize=10];\n", p.Background)
	fmt.Fprintf(&buf, "  edge [color=%q, arrowhead=none];\n", p.LightPurple)
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range h.Descendants() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label, style)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range h.Links() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(l.Source), nodeID(l.Target))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID uses the traversal index; names are not unique.
func nodeID(n *hierarchy.Node) string {
	return "n" + strconv.Itoa(n.Index)
}

func fmtLabel(n *hierarchy.Node, detailed bool) string {
	name := n.Data.Label()
	if !detailed || len(n.Data.Payload) == 0 {
		return name
	}
	payload := n.Data.Payload
	parts := make([]string, 0, len(payload))
	for _, k := range slices.Sorted(maps.Keys(payload)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, payload[k]))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *hierarchy.Node, label string, style styles.Style) []string {
	s := style.Node(n.Kind)
	p := style.Palette()
	attrs := []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fontcolor=%q", s.TextColor)}
	switch n.Kind {
	case hierarchy.KindRoot:
		attrs = append(attrs,
			"style=\"rounded,filled\"",
			fmt.Sprintf("fillcolor=\"%s:%s\"", p.Peach, p.Pink),
			"gradientangle=270",
			fmt.Sprintf("color=%q", p.Pink))
	case hierarchy.KindBranch:
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Stroke))
		if !n.Expanded() {
			attrs = append(attrs, "peripheries=2")
		}
	default:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", fmt.Sprintf("color=%q", s.Stroke))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the figure scales with its
// container instead of using Graphviz's point units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
