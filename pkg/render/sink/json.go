package sink

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// JSONOption configures RenderJSON.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style   string
	payload bool
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONPayload includes each node's document payload.
func WithJSONPayload() JSONOption { return func(r *jsonRenderer) { r.payload = true } }

type jsonOutput struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Empty     bool         `json:"empty,omitempty"`
	Style     string       `json:"style,omitempty"`
	Margins   jsonMargins  `json:"margins"`
	Transform jsonMatrix   `json:"transform"`
	Nodes     []jsonNode   `json:"nodes"`
	Links     []jsonLink   `json:"links"`
	Minimap   *jsonMinimap `json:"minimap,omitempty"`
}

type jsonMargins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type jsonMatrix struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

type jsonNode struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	Kind      string       `json:"kind"`
	Depth     int          `json:"depth"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Clickable bool         `json:"clickable,omitempty"`
	Expanded  bool         `json:"expanded,omitempty"`
	Lines     []string     `json:"lines"`
	Payload   tree.Payload `json:"payload,omitempty"`
}

type jsonLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Path   string `json:"path"`
}

type jsonMinimap struct {
	Scale          float64    `json:"scale"`
	Frame          jsonMatrix `json:"frame"`
	Tree           jsonMatrix `json:"tree"`
	Overlay        jsonMatrix `json:"overlay"`
	OverlayVisible bool       `json:"overlay_visible"`
}

// RenderJSON writes scene as indented JSON.
func RenderJSON(w io.Writer, scene diagram.Scene, opts ...JSONOption) error {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:     scene.Width,
		Height:    scene.Height,
		Empty:     scene.Empty,
		Style:     r.style,
		Margins:   jsonMargins(scene.Margins),
		Transform: matrixJSON(scene.Transform),
		Nodes:     make([]jsonNode, 0, len(scene.Nodes)),
		Links:     make([]jsonLink, 0, len(scene.Links)),
	}
	for _, n := range scene.Nodes {
		jn := jsonNode{
			Key:       string(n.Key),
			Label:     n.Label,
			Kind:      n.Kind.String(),
			Depth:     n.Depth,
			X:         n.X,
			Y:         n.Y,
			Clickable: n.Clickable,
			Expanded:  n.Expanded,
			Lines:     n.Lines(),
		}
		if r.payload && n.Data != nil {
			jn.Payload = n.Data.Payload
		}
		out.Nodes = append(out.Nodes, jn)
	}
	for _, l := range scene.Links {
		out.Links = append(out.Links, jsonLink{
			Source: string(l.SourceKey),
			Target: string(l.TargetKey),
			Path:   l.Path(),
		})
	}
	if !scene.Empty {
		mm := scene.Minimap
		out.Minimap = &jsonMinimap{
			Scale:          mm.Scale,
			Frame:          matrixJSON(mm.Frame),
			Tree:           matrixJSON(mm.Tree),
			Overlay:        matrixJSON(mm.Overlay),
			OverlayVisible: mm.OverlayVisible,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

func matrixJSON(m viewport.Matrix) jsonMatrix {
	return jsonMatrix{A: m.ScaleX, B: m.SkewY, C: m.SkewX, D: m.ScaleY, E: m.TranslateX, F: m.TranslateY}
}
