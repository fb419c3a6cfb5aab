package diagram

import "github.com/matzehuels/arbor/pkg/viewport"

// Margins surround the laid-out tree inside the container.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins returns top=10, right=80, bottom=10, left=80.
func DefaultMargins() Margins {
	return Margins{Top: 10, Right: 80, Bottom: 10, Left: 80}
}

// LeafClick decides what clicking a node without children does.
type LeafClick int

const (
	// LeafNoop ignores clicks on leaves.
	LeafNoop LeafClick = iota
	// LeafNotify forwards leaf clicks to the activation callback.
	LeafNotify
)

// ParseLeafClick maps a config value ("noop", "notify") to a LeafClick.
func ParseLeafClick(s string) (LeafClick, bool) {
	switch s {
	case "", "noop":
		return LeafNoop, true
	case "notify":
		return LeafNotify, true
	default:
		return LeafNoop, false
	}
}

func (l LeafClick) String() string {
	if l == LeafNotify {
		return "notify"
	}
	return "noop"
}

// Defaults for Config.
const (
	DefaultMinUsable    = 100.0
	DefaultMinimapScale = 0.25
	DefaultMinimapInset = 60.0
	DefaultNodeWidth    = 80.0
	DefaultNodeHeight   = 40.0
)

// Zoom factors of the zoom controls and double click.
const (
	ZoomInFactor      = 1.2
	ZoomOutFactor     = 0.8
	DoubleClickFactor = 1.1
)

// Config holds the static settings of a diagram.
type Config struct {
	Margins Margins
	Bounds  viewport.Bounds

	// Initial is the viewport transform restored by Reset. Nil means a pure
	// translation by the left and top margins.
	Initial *viewport.Matrix

	// MinUsable is the smallest width and height that produce output.
	MinUsable float64

	// MinimapScale shrinks the overview; MinimapInset is its distance from the
	// bottom-right corner in main-view units. An inset of 0 is flush.
	MinimapScale float64
	MinimapInset float64

	// NodeWidth and NodeHeight size the click target around each anchor.
	NodeWidth  float64
	NodeHeight float64

	LeafClick LeafClick
}

// DefaultConfig returns the stock diagram settings.
func DefaultConfig() Config {
	return Config{
		Margins:      DefaultMargins(),
		Bounds:       viewport.DefaultBounds(),
		MinUsable:    DefaultMinUsable,
		MinimapScale: DefaultMinimapScale,
		MinimapInset: DefaultMinimapInset,
		NodeWidth:    DefaultNodeWidth,
		NodeHeight:   DefaultNodeHeight,
		LeafClick:    LeafNoop,
	}
}

// InitialTransform resolves the transform Reset restores.
func (c Config) InitialTransform() viewport.Matrix {
	if c.Initial != nil {
		return *c.Initial
	}
	return viewport.Translate(c.Margins.Left, c.Margins.Top)
}

// Viewport returns the controller configuration for a container of the given size.
func (c Config) Viewport(width, height float64) viewport.Config {
	return viewport.Config{
		Width:   width,
		Height:  height,
		Bounds:  c.Bounds,
		Initial: c.InitialTransform(),
	}
}

// minimapTree offsets the overview tree by the margins only; the overview
// never zooms.
func (c Config) minimapTree() viewport.Matrix {
	return viewport.Translate(c.Margins.Left, c.Margins.Top)
}
