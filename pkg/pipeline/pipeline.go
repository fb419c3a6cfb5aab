// Package pipeline runs the load → compose → render pipeline behind the
// arbor CLI.
//
// # Stages
//
//  1. Load: read a JSON or YAML tree document
//  2. Compose: apply expansion overrides, lay out the visible tree and build
//     a [diagram.Scene] for the requested container size and transform
//  3. Render: write the scene in one or more formats (SVG, JSON, DOT,
//     Graphviz SVG, PDF, PNG, terminal text)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "lots.json",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Rendered artifacts are cached by document hash and options; the tree and
// scene are always recomposed since that is cheap.
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/render/styles"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
)

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the rasterization factor for PNG output.
	DefaultPNGScale = 2.0

	// DefaultCols and DefaultRows size the text format.
	DefaultCols = 100
	DefaultRows = 30
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
	FormatText     = "text"
)

// Formats lists every output format in a stable order.
var Formats = []string{FormatSVG, FormatJSON, FormatDOT, FormatGraphviz, FormatPDF, FormatPNG, FormatText}

// Expansion modes.
const (
	ExpandDocument = "document" // honor isExpanded flags in the document
	ExpandAll      = "all"
	ExpandNone     = "none" // root only
)

// Options configures one pipeline run.
type Options struct {
	// Load
	Input  string      `json:"input,omitempty"`
	Data   []byte      `json:"-"`
	Format tree.Format `json:"format,omitempty"`

	// Compose
	Width     float64          `json:"width,omitempty"`
	Height    float64          `json:"height,omitempty"`
	Expansion string           `json:"expansion,omitempty"`
	Toggle    []string         `json:"toggle,omitempty"` // node names flipped after Expansion
	Zoom      float64          `json:"zoom,omitempty"`
	Transform *viewport.Matrix `json:"transform,omitempty"`

	// Render
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	NoMinimap bool     `json:"no_minimap,omitempty"`
	Payload   bool     `json:"payload,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Title     string   `json:"title,omitempty"`
	PNGScale  float64  `json:"png_scale,omitempty"`
	Cols      int      `json:"cols,omitempty"`
	Rows      int      `json:"rows,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime
	Config *config.Config `json:"-"`
	Logger *log.Logger    `json:"-"`
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Tree      *tree.Node
	DocHash   string
	Hierarchy *hierarchy.Hierarchy
	Scene     diagram.Scene
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information.
type Stats struct {
	TreeNodes    int
	VisibleNodes int
	LoadTime     time.Duration
	ComposeTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo records which formats came from cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// RenderHit reports whether every artifact was served from cache.
func (c CacheInfo) RenderHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format %q (must be one of: %v)", format, Formats)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style name is registered.
func ValidateStyle(style string) error {
	if _, err := styles.ByName(style); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid style %q (must be one of: %v)", style, styles.Names())
	}
	return nil
}

// ValidateExpansion checks the expansion mode.
func ValidateExpansion(mode string) error {
	switch mode {
	case ExpandDocument, ExpandAll, ExpandNone:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid expansion %q (must be one of: document, all, none)", mode)
}

// ValidateAndSetDefaults fills zero values and rejects unusable options.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" && len(o.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input path or document data is required")
	}
	if len(o.Data) > 0 && o.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "format is required for in-memory documents")
	}
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Expansion == "" {
		o.Expansion = ExpandDocument
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = o.Config.Style
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Zoom < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "zoom must be positive, got %v", o.Zoom)
	}
	if err := ValidateExpansion(o.Expansion); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// Source names the input for logs and hooks.
func (o *Options) Source() string {
	if o.Input != "" {
		return o.Input
	}
	return fmt.Sprintf("<%s data>", o.Format)
}

// ArtifactKeyOpts returns the cache key inputs for one format.
func (o *Options) ArtifactKeyOpts(format string, scene diagram.Scene, expansion string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Width:     o.Width,
		Height:    o.Height,
		Transform: scene.Transform.String(),
		Expansion: expansion,
		Minimap:   !o.NoMinimap,
		Payload:   o.Payload,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.PNGScale
	case FormatText:
		k.Config = fmt.Sprintf("%dx%d", o.Cols, o.Rows)
	case FormatDOT, FormatGraphviz:
		k.Payload = o.Detailed
	}
	if o.Title != "" {
		k.Config += "|" + o.Title
	}
	k.Config += "|" + configHash(o.Config)
	return k
}

// configHash digests the settings that shape the scene.
func configHash(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := config.Encode(&buf, *cfg); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}
