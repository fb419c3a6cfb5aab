package diagram_test

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/tree"
)

func ExampleSession() {
	root := &tree.Node{
		Name:     "A",
		Expanded: true,
		Children: []*tree.Node{
			{Name: "B", Children: []*tree.Node{{Name: "D"}}},
			{Name: "C"},
		},
	}

	s := diagram.NewSession(root, 1000, 600)
	scenes := 0
	unsubscribe := s.Subscribe(func(diagram.Scene) { scenes++ })
	defer unsubscribe()

	fmt.Println("open:", s.Scene().Labels())

	// Click B where it is drawn on screen.
	b, _ := s.Scene().Node(tree.KeyFor([]int{0}))
	s.Click(s.Scene().ScreenPoint(b))
	fmt.Println("expand B:", s.Scene().Labels())

	s.Toggle(tree.KeyFor([]int{0}))
	fmt.Println("collapse B:", s.Scene().Labels())

	// Clicking a leaf does nothing by default.
	c, _ := s.Scene().Node(tree.KeyFor([]int{1}))
	s.Click(s.Scene().ScreenPoint(c))
	fmt.Println("click C:", s.Scene().Labels())

	s.ZoomIn()
	t := s.Transform()
	fmt.Printf("zoom in: scale=%.2f translate=(%.1f, %.1f)\n", t.ScaleX, t.TranslateX, t.TranslateY)
	s.Reset()
	fmt.Println("reset:", s.Transform())
	fmt.Println("scenes:", scenes)
	// Output:
	// open: [A B C]
	// expand B: [A B C D]
	// collapse B: [A B C]
	// click C: [A B C]
	// zoom in: scale=1.20 translate=(-4.0, -48.0)
	// reset: matrix(1, 0, 0, 1, 80, 10)
	// scenes: 4
}
