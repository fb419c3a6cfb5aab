package viewport

import "math"

// Default scale bounds.
const (
	DefaultScaleMin = 0.5
	DefaultScaleMax = 4.0
)

// Zoom factors used by the convenience operations.
const (
	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9
)

// Bounds limits the scale on each axis.
type Bounds struct {
	ScaleXMin, ScaleXMax float64
	ScaleYMin, ScaleYMax float64
}

// DefaultBounds returns 0.5..4 on both axes.
func DefaultBounds() Bounds {
	return Bounds{
		ScaleXMin: DefaultScaleMin, ScaleXMax: DefaultScaleMax,
		ScaleYMin: DefaultScaleMin, ScaleYMax: DefaultScaleMax,
	}
}

// Config configures a Controller.
type Config struct {
	Width, Height float64
	Bounds        Bounds
	// Initial is the transform restored by Reset. It is clamped to Bounds.
	Initial Matrix
}

// ScaleOptions describes a relative zoom.
type ScaleOptions struct {
	ScaleX float64
	ScaleY float64 // 0 means same as ScaleX
	// Point, when set, stays at the same screen position.
	Point *Point
}

// Controller holds the live transform of one diagram.
type Controller struct {
	cfg    Config
	m      Matrix
	anchor *dragAnchor
}

type dragAnchor struct {
	start     Point
	translate Point
}

// New creates a controller positioned at cfg.Initial.
func New(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	c.cfg.Initial = c.constrain(cfg.Initial)
	c.m = c.cfg.Initial
	return c
}

// Matrix returns the current transform.
func (c *Controller) Matrix() Matrix { return c.m }

// Initial returns the transform Reset restores.
func (c *Controller) Initial() Matrix { return c.cfg.Initial }

// Bounds returns the configured scale bounds.
func (c *Controller) Bounds() Bounds { return c.cfg.Bounds }

// Size returns the container size.
func (c *Controller) Size() (width, height float64) { return c.cfg.Width, c.cfg.Height }

// Center returns the middle of the container in screen coordinates.
func (c *Controller) Center() Point {
	return Point{X: c.cfg.Width / 2, Y: c.cfg.Height / 2}
}

// Resize updates the container size.
func (c *Controller) Resize(width, height float64) {
	c.cfg.Width, c.cfg.Height = width, height
}

// Scale multiplies the current scale by the given factors, clamped to the
// bounds. Non-positive or non-finite factors leave that axis unchanged.
func (c *Controller) Scale(opts ScaleOptions) {
	fy := opts.ScaleY
	if fy == 0 {
		fy = opts.ScaleX
	}
	b := c.cfg.Bounds
	tx, fx := target(c.m.ScaleX, opts.ScaleX, b.ScaleXMin, b.ScaleXMax)
	ty, fy := target(c.m.ScaleY, fy, b.ScaleYMin, b.ScaleYMax)
	if fx == 1 && fy == 1 {
		return
	}

	next := c.m.Multiply(Scale(fx, fy))
	if opts.Point != nil && c.m.Invertible() {
		q := c.m.ApplyInverse(*opts.Point)
		next = c.m.
			Multiply(Translate(q.X, q.Y)).
			Multiply(Scale(fx, fy)).
			Multiply(Translate(-q.X, -q.Y))
	}
	next.ScaleX, next.ScaleY = tx, ty
	c.m = c.constrain(next)
}

// target returns the clamped scale a factor leads to, and the factor that
// actually gets there.
func target(current, factor, lo, hi float64) (float64, float64) {
	if !validFactor(factor) || current == 0 {
		return current, 1
	}
	t := clamp(current*factor, lo, hi)
	return t, t / current
}

func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Translate pans by (dx, dy) screen units.
func (c *Controller) Translate(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	c.m.TranslateX += dx
	c.m.TranslateY += dy
}

// SetTranslate moves the origin to (x, y) without touching the scale.
func (c *Controller) SetTranslate(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	c.m.TranslateX = x
	c.m.TranslateY = y
}

// SetTransform replaces the transform, clamping its scale.
func (c *Controller) SetTransform(m Matrix) {
	c.m = c.constrain(m)
}

// DragStart records the anchor of a drag gesture.
func (c *Controller) DragStart(p Point) {
	c.anchor = &dragAnchor{
		start:     p,
		translate: Point{X: c.m.TranslateX, Y: c.m.TranslateY},
	}
}

// DragMove pans so the anchor follows p. It does nothing outside a drag.
func (c *Controller) DragMove(p Point) {
	if c.anchor == nil {
		return
	}
	c.SetTranslate(
		c.anchor.translate.X+(p.X-c.anchor.start.X),
		c.anchor.translate.Y+(p.Y-c.anchor.start.Y),
	)
}

// DragEnd finishes a drag. Calling it outside a drag is a no-op.
func (c *Controller) DragEnd() {
	c.anchor = nil
}

// IsDragging reports whether a drag anchor is recorded.
func (c *Controller) IsDragging() bool {
	return c.anchor != nil
}

// Wheel zooms in for negative deltaY and out for positive, about p.
func (c *Controller) Wheel(p Point, deltaY float64) {
	switch {
	case deltaY < 0:
		c.Scale(ScaleOptions{ScaleX: WheelZoomIn, Point: &p})
	case deltaY > 0:
		c.Scale(ScaleOptions{ScaleX: WheelZoomOut, Point: &p})
	}
}

// Reset restores the initial transform and abandons any drag.
func (c *Controller) Reset() {
	c.m = c.cfg.Initial
	c.anchor = nil
}

// Clear moves to the identity transform, clamped to the bounds.
func (c *Controller) Clear() {
	c.m = c.constrain(Identity)
	c.anchor = nil
}

// String returns the current transform as an SVG matrix() value.
func (c *Controller) String() string {
	return c.m.String()
}

// StringInvert returns the inverse transform as an SVG matrix() value.
// A singular transform yields the zero matrix.
func (c *Controller) StringInvert() string {
	inv, _ := c.m.Invert()
	return inv.String()
}

func (c *Controller) constrain(m Matrix) Matrix {
	b := c.cfg.Bounds
	m.ScaleX = clamp(m.ScaleX, b.ScaleXMin, b.ScaleXMax)
	m.ScaleY = clamp(m.ScaleY, b.ScaleYMin, b.ScaleYMax)
	return m
}

// clamp limits v to [lo, hi]. Unset bounds (zero) are ignored, and NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
