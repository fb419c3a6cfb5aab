package viewport

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func newController() *Controller {
	return New(Config{
		Width:   1000,
		Height:  600,
		Bounds:  DefaultBounds(),
		Initial: Translate(80, 10),
	})
}

func TestScaleConvergesToMax(t *testing.T) {
	c := newController()
	for i := 0; i < 10; i++ {
		c.Scale(ScaleOptions{ScaleX: 10, ScaleY: 10})
		m := c.Matrix()
		if m.ScaleX != 4 || m.ScaleY != 4 {
			t.Fatalf("step %d: scale = (%v, %v), want (4, 4)", i, m.ScaleX, m.ScaleY)
		}
	}
}

func TestScaleIgnoresBadFactors(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
	}{
		{"Zero", 0},
		{"Negative", -2},
		{"NaN", math.NaN()},
		{"Inf", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			before := c.Matrix()
			c.Scale(ScaleOptions{ScaleX: tt.factor, ScaleY: tt.factor})
			if c.Matrix() != before {
				t.Errorf("Scale(%v) changed the transform to %v", tt.factor, c.Matrix())
			}
		})
	}
}

func TestScaleAxes(t *testing.T) {
	c := newController()
	c.Scale(ScaleOptions{ScaleX: 2, ScaleY: 0.25})
	m := c.Matrix()
	if m.ScaleX != 2 || m.ScaleY != 0.5 {
		t.Errorf("scale = (%v, %v), want (2, 0.5)", m.ScaleX, m.ScaleY)
	}
}

func TestScaleAtPoint(t *testing.T) {
	c := newController()
	p := Point{X: 321, Y: 123}
	before := c.Matrix().ApplyInverse(p)
	c.Scale(ScaleOptions{ScaleX: 1.5, Point: &p})
	after := c.Matrix().ApplyInverse(p)
	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("fixed point moved from %+v to %+v", before, after)
	}
}

func TestWheel(t *testing.T) {
	c := newController()
	c.Wheel(Point{X: 10, Y: 10}, -120)
	if got := c.Matrix().ScaleX; math.Abs(got-1.1) > 1e-12 {
		t.Errorf("wheel in scale = %v, want 1.1", got)
	}
	c.Wheel(Point{X: 10, Y: 10}, 120)
	if got := c.Matrix().ScaleX; math.Abs(got-0.99) > 1e-12 {
		t.Errorf("wheel out scale = %v, want 0.99", got)
	}
	before := c.Matrix()
	c.Wheel(Point{}, 0)
	if c.Matrix() != before {
		t.Error("zero delta should not zoom")
	}
}

func TestDrag(t *testing.T) {
	c := newController()
	c.DragMove(Point{X: 500, Y: 500})
	if c.Matrix() != c.Initial() {
		t.Error("DragMove without DragStart moved the view")
	}
	c.DragEnd()

	c.Scale(ScaleOptions{ScaleX: 2})
	before := c.Matrix()
	c.DragStart(Point{X: 100, Y: 100})
	if !c.IsDragging() {
		t.Fatal("IsDragging() = false after DragStart")
	}
	c.DragMove(Point{X: 130, Y: 90})
	c.DragEnd()
	after := c.Matrix()
	if after.TranslateX-before.TranslateX != 30 || after.TranslateY-before.TranslateY != -10 {
		t.Errorf("drag moved by (%v, %v), want (30, -10)",
			after.TranslateX-before.TranslateX, after.TranslateY-before.TranslateY)
	}
	if after.ScaleX != before.ScaleX {
		t.Error("drag changed the scale")
	}
}

func TestResetAndClear(t *testing.T) {
	c := newController()
	c.Scale(ScaleOptions{ScaleX: 3})
	c.Translate(-40, 17)
	c.DragStart(Point{})
	c.Reset()
	if c.Matrix() != Translate(80, 10) {
		t.Errorf("Reset() = %v, want %v", c.Matrix(), Translate(80, 10))
	}
	if c.IsDragging() {
		t.Error("Reset should end the drag")
	}
	c.Clear()
	if c.Matrix() != Identity {
		t.Errorf("Clear() = %v, want identity", c.Matrix())
	}
}

func TestInitialIsClamped(t *testing.T) {
	c := New(Config{Bounds: DefaultBounds(), Initial: Scale(10, 0.1)})
	if m := c.Initial(); m.ScaleX != 4 || m.ScaleY != 0.5 {
		t.Errorf("Initial() = %v, want scale clamped to (4, 0.5)", m)
	}
}

func TestSetTransform(t *testing.T) {
	c := newController()
	c.SetTransform(Matrix{ScaleX: 9, ScaleY: 0.1, TranslateX: 5, TranslateY: 6})
	want := Matrix{ScaleX: 4, ScaleY: 0.5, TranslateX: 5, TranslateY: 6}
	if c.Matrix() != want {
		t.Errorf("SetTransform = %v, want %v", c.Matrix(), want)
	}
	c.SetTranslate(math.NaN(), 1)
	if c.Matrix() != want {
		t.Error("SetTranslate(NaN) should be ignored")
	}
}

func TestStrings(t *testing.T) {
	c := newController()
	if got, want := c.String(), "matrix(1, 0, 0, 1, 80, 10)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := c.StringInvert(), "matrix(1, 0, 0, 1, -80, -10)"; got != want {
		t.Errorf("StringInvert() = %q, want %q", got, want)
	}
}

func TestScaleClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := Bounds{
			ScaleXMin: rapid.Float64Range(0.1, 1).Draw(t, "xmin"),
			ScaleYMin: rapid.Float64Range(0.1, 1).Draw(t, "ymin"),
		}
		b.ScaleXMax = b.ScaleXMin + rapid.Float64Range(0, 10).Draw(t, "xspan")
		b.ScaleYMax = b.ScaleYMin + rapid.Float64Range(0, 10).Draw(t, "yspan")
		c := New(Config{Width: 800, Height: 600, Bounds: b, Initial: Identity})

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			opts := ScaleOptions{
				ScaleX: rapid.Float64Range(-5, 50).Draw(t, "fx"),
				ScaleY: rapid.Float64Range(-5, 50).Draw(t, "fy"),
			}
			if rapid.Bool().Draw(t, "anchored") {
				p := Point{X: rapid.Float64Range(0, 800).Draw(t, "px"), Y: rapid.Float64Range(0, 600).Draw(t, "py")}
				opts.Point = &p
			}
			c.Scale(opts)
			m := c.Matrix()
			if m.ScaleX < b.ScaleXMin || m.ScaleX > b.ScaleXMax {
				t.Fatalf("scaleX %v outside [%v, %v]", m.ScaleX, b.ScaleXMin, b.ScaleXMax)
			}
			if m.ScaleY < b.ScaleYMin || m.ScaleY > b.ScaleYMax {
				t.Fatalf("scaleY %v outside [%v, %v]", m.ScaleY, b.ScaleYMin, b.ScaleYMax)
			}
		}
	})
}

func TestDragRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := newController()
		c.Translate(rapid.Float64Range(-500, 500).Draw(t, "tx"), rapid.Float64Range(-500, 500).Draw(t, "ty"))
		before := c.Matrix()

		p0 := Point{X: rapid.Float64Range(-1000, 1000).Draw(t, "x0"), Y: rapid.Float64Range(-1000, 1000).Draw(t, "y0")}
		p1 := Point{X: rapid.Float64Range(-1000, 1000).Draw(t, "x1"), Y: rapid.Float64Range(-1000, 1000).Draw(t, "y1")}
		c.DragStart(p0)
		c.DragMove(p1)
		c.DragEnd()

		after := c.Matrix()
		const eps = 1e-9
		if math.Abs(after.TranslateX-before.TranslateX-(p1.X-p0.X)) > eps ||
			math.Abs(after.TranslateY-before.TranslateY-(p1.Y-p0.Y)) > eps {
			t.Fatalf("drag %v -> %v moved %v to %v", p0, p1, before, after)
		}
	})
}
