package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/expand"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/render/nodelink"
	"github.com/matzehuels/arbor/pkg/render/sink"
	"github.com/matzehuels/arbor/pkg/render/styles"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Input is what the render stage draws from.
type Input struct {
	Scene     diagram.Scene
	Tree      *tree.Node
	Expansion expand.State
}

// Render produces one artifact per requested format. PDF and PNG share a
// single SVG rendering.
func Render(ctx context.Context, in Input, opts Options) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svgData, dot []byte
	svgOnce := func() []byte {
		if svgData == nil {
			svgData = renderSVG(in.Scene, style, opts)
		}
		return svgData
	}
	dotOnce := func() []byte {
		if dot == nil {
			h := hierarchy.Build(in.Tree, hierarchy.WithVisibility(in.Expansion.Predicate()))
			dot = []byte(nodelink.ToDOT(h, nodelink.Options{Detailed: opts.Detailed, Style: style}))
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatJSON:
			data, err = renderJSON(in.Scene, style, opts)
		case FormatDOT:
			data = dotOnce()
		case FormatGraphviz:
			data, err = nodelink.RenderSVG(ctx, string(dotOnce()))
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), opts.PNGScale)
		case FormatText:
			data = []byte(sink.Rasterize(in.Scene, opts.Cols, opts.Rows, rasterOptions(opts)...).String())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(scene diagram.Scene, style styles.Style, opts Options) []byte {
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.NoMinimap {
		svgOpts = append(svgOpts, sink.WithoutMinimap())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	var buf bytes.Buffer
	sink.RenderSVG(&buf, scene, svgOpts...)
	return buf.Bytes()
}

func renderJSON(scene diagram.Scene, style styles.Style, opts Options) ([]byte, error) {
	jsonOpts := []sink.JSONOption{sink.WithJSONStyle(style.Name())}
	if opts.Payload {
		jsonOpts = append(jsonOpts, sink.WithJSONPayload())
	}
	var buf bytes.Buffer
	if err := sink.RenderJSON(&buf, scene, jsonOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rasterOptions(opts Options) []sink.RasterOption {
	if opts.NoMinimap {
		return []sink.RasterOption{sink.WithoutMinimapInset()}
	}
	return nil
}
