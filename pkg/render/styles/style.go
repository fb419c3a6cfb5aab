// Package styles defines how diagram nodes, links and the minimap look.
//
// A [Style] maps each [hierarchy.Kind] to a [NodeStyle] and supplies the
// palette for everything else. Two styles ship with arbor: [Lots], the dark
// palette the diagram was designed with, and [Paper], a light variant for
// printing. Renderers in the sink package only read styles; they never
// branch on kinds themselves.
package styles

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/arbor/pkg/hierarchy"
)

// RootGradientID is the id of the gradient the root node is filled with.
const RootGradientID = "main"

// Palette is the set of colours a style draws with.
type Palette struct {
	Background  string // diagram background
	Background2 string // minimap background
	Peach       string // root gradient start
	Pink        string // root gradient end
	Blue        string // branch outline
	Green       string // leaf outline and text
	Plum        string
	LightPurple string // links
	White       string // branch text, overlay
}

// NodeStyle describes how one kind of node is drawn.
type NodeStyle struct {
	Width, Height   float64
	FontSize        float64
	FontFamily      string
	TextPadding     float64
	Fill            string
	Stroke          string
	StrokeWidth     float64
	StrokeDasharray string
	StrokeOpacity   float64
	RX              float64
	TextColor       string
}

// LineOffsets returns the baselines of the three text lines relative to the
// node centre.
func (s NodeStyle) LineOffsets() [3]float64 {
	half := s.FontSize * 0.75 / 2
	third := s.Height/3 - s.FontSize*0.75
	return [3]float64{
		-third - s.TextPadding + half,
		half,
		third + s.TextPadding + half,
	}
}

// TextX returns the left edge of the text lines relative to the node centre.
func (s NodeStyle) TextX() float64 {
	return -(s.Width/2 - 5)
}

// Style is a named look for diagrams.
type Style interface {
	Name() string
	Palette() Palette
	Node(kind hierarchy.Kind) NodeStyle
}

// DefaultPalette is the dark palette of the Lots style.
var DefaultPalette = Palette{
	Background:  "#272b4d",
	Background2: "#1b1e34",
	Peach:       "#fd9b93",
	Pink:        "#fe6e9e",
	Blue:        "#03c0dc",
	Green:       "#26deb0",
	Plum:        "#71248e",
	LightPurple: "#374469",
	White:       "#ffffff",
}

// PaperPalette is a light palette suited for printing.
var PaperPalette = Palette{
	Background:  "#fdfcf8",
	Background2: "#eeebe1",
	Peach:       "#f7b267",
	Pink:        "#f25c54",
	Blue:        "#1d4e89",
	Green:       "#2a7f62",
	Plum:        "#5b2a86",
	LightPurple: "#9aa3b8",
	White:       "#1f1f1f",
}

// Lots is the default dark style.
type Lots struct{}

func (Lots) Name() string     { return "lots" }
func (Lots) Palette() Palette { return DefaultPalette }
func (Lots) Node(kind hierarchy.Kind) NodeStyle {
	return nodeStyle(DefaultPalette, kind)
}

// Paper is the light style.
type Paper struct{}

func (Paper) Name() string     { return "paper" }
func (Paper) Palette() Palette { return PaperPalette }
func (Paper) Node(kind hierarchy.Kind) NodeStyle {
	return nodeStyle(PaperPalette, kind)
}

func nodeStyle(p Palette, kind hierarchy.Kind) NodeStyle {
	s := NodeStyle{
		Width:       80,
		Height:      40,
		FontSize:    9,
		FontFamily:  "Arial",
		TextPadding: 3,
		Fill:        p.Background,
	}
	switch kind {
	case hierarchy.KindRoot:
		s.Fill = fmt.Sprintf("url(#%s)", RootGradientID)
		s.RX = 10
		s.TextColor = p.Background
	case hierarchy.KindBranch:
		s.Stroke = p.Blue
		s.StrokeWidth = 1
		s.StrokeOpacity = 1
		s.TextColor = p.White
	default:
		s.Stroke = p.Green
		s.StrokeWidth = 1
		s.StrokeDasharray = "2,2"
		s.StrokeOpacity = 0.6
		s.RX = 10
		s.TextColor = p.Green
	}
	return s
}

var registry = map[string]Style{
	"lots":  Lots{},
	"paper": Paper{},
}

// ByName looks up a style. Names are case-insensitive.
func ByName(name string) (Style, error) {
	if s, ok := registry[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
