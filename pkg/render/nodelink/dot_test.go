package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
)

func sample() *tree.Node {
	return &tree.Node{
		Name:    "A",
		Payload: tree.Payload{"lot_code": "L-A", "amount_transferred": 10},
		Children: []*tree.Node{
			{Name: "B", Children: []*tree.Node{{Name: "D"}}},
			{Name: "A"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(hierarchy.Build(sample()), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"n0" -> "n1";`,
		`"n0" -> "n2";`,
		`"n1" -> "n3";`,
		`"n2" [label="A"`,
		"dashed",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("edges = %d, want 3", got)
	}
}

func TestToDOTCollapsed(t *testing.T) {
	keyB := tree.KeyFor([]int{0})
	h := hierarchy.Build(sample(), hierarchy.WithVisibility(func(k tree.Key, _ *tree.Node) bool {
		return k != keyB
	}))
	dot := ToDOT(h, Options{})
	if strings.Contains(dot, `label="D"`) {
		t.Error("collapsed child D should not be exported")
	}
	if !strings.Contains(dot, "peripheries=2") {
		t.Error("collapsed branch should be marked")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(hierarchy.Build(sample()), Options{Detailed: true})
	if !strings.Contains(dot, `label="A\namount_transferred: 10\nlot_code: L-A"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if plain := []byte("<svg><g/></svg>"); string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
