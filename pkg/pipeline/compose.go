package pipeline

import (
	"strings"

	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/expand"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// Expansion resolves the expansion mode and name toggles into a state.
func Expansion(root *tree.Node, opts Options) (expand.State, error) {
	var state expand.State
	switch opts.Expansion {
	case ExpandAll:
		state = expand.AllExpanded()
	case ExpandNone:
		state = expand.State{}
	default:
		state = expand.FromTree(root)
	}

	for _, name := range opts.Toggle {
		keys := findByName(root, name)
		if len(keys) == 0 {
			return expand.State{}, errors.New(errors.ErrCodeNotFound, "no node named %q", name)
		}
		for _, k := range keys {
			state = state.Toggle(k)
		}
	}
	return state, nil
}

func findByName(root *tree.Node, name string) []tree.Key {
	var keys []tree.Key
	tree.Walk(root, func(n *tree.Node, _ []int, key tree.Key) bool {
		if n.Name == name {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

// Transform resolves the viewport transform for a static render: the
// configured initial transform or an explicit one, then an optional zoom
// about the container centre. Bounds apply throughout.
func Transform(cfg diagram.Config, opts Options) viewport.Matrix {
	ctrl := viewport.New(cfg.Viewport(opts.Width, opts.Height))
	if opts.Transform != nil {
		ctrl.SetTransform(*opts.Transform)
	}
	if opts.Zoom > 0 {
		center := ctrl.Center()
		ctrl.Scale(viewport.ScaleOptions{ScaleX: opts.Zoom, Point: &center})
	}
	return ctrl.Matrix()
}

// Compose builds the scene and the laid-out hierarchy for root.
func Compose(root *tree.Node, opts Options) (diagram.Scene, *hierarchy.Hierarchy, expand.State, error) {
	state, err := Expansion(root, opts)
	if err != nil {
		return diagram.Scene{}, nil, expand.State{}, err
	}
	cfg := opts.Config.Diagram()
	snap := diagram.Snapshot{
		Tree:      root,
		Expansion: &state,
		Transform: Transform(cfg, opts),
		Width:     opts.Width,
		Height:    opts.Height,
	}
	scene, h := diagram.ComposeHierarchy(snap, cfg)
	return scene, h, state, nil
}

// expansionKey is a stable digest input for an expansion state. It depends
// only on the state, so artifacts built from the tree (DOT, Graphviz) are
// keyed correctly even when the container is too small for a scene.
func expansionKey(state expand.State) string {
	var b strings.Builder
	if state.Default() {
		b.WriteString("all;")
	}
	for _, k := range state.Keys() {
		b.WriteString(string(k))
		if state.Expanded(k) {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteByte(';')
	}
	return b.String()
}
