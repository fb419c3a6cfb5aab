package hierarchy_test

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
)

func ExampleBuild() {
	root := &tree.Node{
		Name:     "A",
		Expanded: true,
		Children: []*tree.Node{
			{Name: "B", Children: []*tree.Node{{Name: "D"}}},
			{Name: "C"},
		},
	}

	// Only nodes flagged as expanded show their children.
	h := hierarchy.Build(root, hierarchy.WithVisibility(func(_ tree.Key, n *tree.Node) bool {
		return n.Expanded
	}))

	for _, n := range h.Descendants() {
		fmt.Printf("%s kind=%s depth=%d expanded=%v\n", n.Data.Name, n.Kind, n.Depth, n.Expanded())
	}
	fmt.Println("links:", len(h.Links()))
	fmt.Println("visible:", h.Len(), "of", tree.Count(root))
	// Output:
	// A kind=root depth=0 expanded=true
	// B kind=branch depth=1 expanded=false
	// C kind=leaf depth=1 expanded=false
	// links: 2
	// visible: 3 of 4
}
