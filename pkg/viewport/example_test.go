package viewport_test

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/viewport"
)

func ExampleController() {
	ctrl := viewport.New(viewport.Config{
		Width:   800,
		Height:  600,
		Bounds:  viewport.DefaultBounds(),
		Initial: viewport.Translate(80, 10),
	})
	fmt.Println("initial:", ctrl)

	// Zoom about the centre; the centre stays put on screen.
	center := ctrl.Center()
	ctrl.Scale(viewport.ScaleOptions{ScaleX: 2, Point: &center})
	fmt.Println("zoomed:", ctrl)

	// Asking for 10x more only reaches the upper bound.
	ctrl.Scale(viewport.ScaleOptions{ScaleX: 10, Point: &center})
	fmt.Println("clamped:", ctrl)

	ctrl.Reset()
	fmt.Println("reset:", ctrl)
	fmt.Println("inverse:", ctrl.StringInvert())
	// Output:
	// initial: matrix(1, 0, 0, 1, 80, 10)
	// zoomed: matrix(2, 0, 0, 2, -240, -280)
	// clamped: matrix(4, 0, 0, 4, -880, -860)
	// reset: matrix(1, 0, 0, 1, 80, 10)
	// inverse: matrix(1, 0, 0, 1, -80, -10)
}

func ExampleController_DragMove() {
	ctrl := viewport.New(viewport.Config{
		Width:   800,
		Height:  600,
		Bounds:  viewport.DefaultBounds(),
		Initial: viewport.Translate(80, 10),
	})

	ctrl.DragStart(viewport.Point{X: 100, Y: 100})
	ctrl.DragMove(viewport.Point{X: 130, Y: 80})
	fmt.Println(ctrl, ctrl.IsDragging())

	ctrl.DragEnd()
	ctrl.DragMove(viewport.Point{X: 500, Y: 500})
	fmt.Println(ctrl, ctrl.IsDragging())
	// Output:
	// matrix(1, 0, 0, 1, 110, -10) true
	// matrix(1, 0, 0, 1, 110, -10) false
}
