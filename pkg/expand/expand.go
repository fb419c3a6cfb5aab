// Package expand holds the interactive expand/collapse state of a tree.
//
// The state is a map from [tree.Key] to a boolean, kept apart from the domain
// tree so documents stay read-only. A [State] is immutable: [State.Toggle]
// and [State.Set] return a new value and leave the receiver untouched, which
// makes the difference between two interaction steps a plain map diff
// ([Diff]).
//
// Keys absent from the map fall back to the state's default, so a State
// built with [AllExpanded] shows every node and the zero State shows only
// the root.
package expand

import (
	"maps"
	"slices"

	"github.com/matzehuels/arbor/pkg/tree"
)

// State is an immutable expansion snapshot.
type State struct {
	flags    map[tree.Key]bool
	fallback bool
}

// FromTree seeds a state from the Expanded flags authored in the document.
func FromTree(root *tree.Node) State {
	flags := make(map[tree.Key]bool)
	tree.Walk(root, func(n *tree.Node, _ []int, key tree.Key) bool {
		if n.Expanded {
			flags[key] = true
		}
		return true
	})
	return State{flags: flags}
}

// AllExpanded returns a state where every node is expanded unless set otherwise.
func AllExpanded() State {
	return State{fallback: true}
}

// Expanded reports whether the node with key shows its children.
func (s State) Expanded(key tree.Key) bool {
	if v, ok := s.flags[key]; ok {
		return v
	}
	return s.fallback
}

// Default reports the expansion of keys that were never set.
func (s State) Default() bool { return s.fallback }

// Toggle returns a new state with the flag for key inverted.
func (s State) Toggle(key tree.Key) State {
	return s.Set(key, !s.Expanded(key))
}

// Set returns a new state with the flag for key set to expanded.
func (s State) Set(key tree.Key, expanded bool) State {
	next := State{
		flags:    make(map[tree.Key]bool, len(s.flags)+1),
		fallback: s.fallback,
	}
	maps.Copy(next.flags, s.flags)
	if expanded == s.fallback {
		delete(next.flags, key)
	} else {
		next.flags[key] = expanded
	}
	return next
}

// Predicate adapts the state to hierarchy.WithVisibility.
func (s State) Predicate() func(tree.Key, *tree.Node) bool {
	return func(key tree.Key, _ *tree.Node) bool {
		return s.Expanded(key)
	}
}

// Equal reports whether both states expand exactly the same keys.
func (s State) Equal(o State) bool {
	return len(Diff(s, o)) == 0 && s.fallback == o.fallback
}

// Keys returns the explicitly set keys in sorted order.
func (s State) Keys() []tree.Key {
	return slices.Sorted(maps.Keys(s.flags))
}

// Diff returns the keys whose explicit flags differ between a and b, sorted.
func Diff(a, b State) []tree.Key {
	var out []tree.Key
	for k := range a.flags {
		if a.Expanded(k) != b.Expanded(k) {
			out = append(out, k)
		}
	}
	for k := range b.flags {
		if _, seen := a.flags[k]; seen {
			continue
		}
		if a.Expanded(k) != b.Expanded(k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
