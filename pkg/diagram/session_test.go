package diagram

import (
	"slices"
	"testing"

	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
)

func TestSessionToggleScenario(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	keyB := tree.KeyFor([]int{0})

	check := func(step string, labels []string, links int) {
		t.Helper()
		sc := s.Scene()
		if got := sortedLabels(sc); !slices.Equal(got, labels) {
			t.Errorf("%s: labels = %v, want %v", step, got, labels)
		}
		if len(sc.Links) != links {
			t.Errorf("%s: links = %d, want %d", step, len(sc.Links), links)
		}
	}

	check("initial", []string{"A", "B", "C"}, 2)
	before := s.Transform()

	b, _ := s.Scene().Node(keyB)
	key, ok := s.Click(s.Scene().ScreenPoint(b))
	if !ok || key != keyB {
		t.Fatalf("Click hit %v, %v, want B", key, ok)
	}
	check("expanded", []string{"A", "B", "C", "D"}, 3)
	if !s.Expansion().Expanded(keyB) {
		t.Error("B should be expanded")
	}

	b, _ = s.Scene().Node(keyB)
	s.Click(s.Scene().ScreenPoint(b))
	check("collapsed", []string{"A", "B", "C"}, 2)

	if s.Transform() != before {
		t.Errorf("toggling changed the transform: %v, want %v", s.Transform(), before)
	}
}

func TestSessionToggleByKey(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	if s.Toggle(tree.KeyFor([]int{0, 0})) {
		t.Error("hidden node D should not toggle")
	}
	if !s.Toggle(tree.KeyFor([]int{0})) {
		t.Fatal("Toggle(B) = false")
	}
	if len(s.Scene().Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(s.Scene().Nodes))
	}
	s.SetExpanded(tree.RootKey, false)
	if len(s.Scene().Nodes) != 1 {
		t.Errorf("collapsed root shows %d nodes, want 1", len(s.Scene().Nodes))
	}
}

func TestSessionLeafClick(t *testing.T) {
	keyC := tree.KeyFor([]int{1})
	tests := []struct {
		name   string
		policy LeafClick
		want   int
	}{
		{"noop", LeafNoop, 0},
		{"notify", LeafNotify, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LeafClick = tt.policy
			calls := 0
			s := NewSession(lotTree(), 1000, 600,
				WithConfig(cfg),
				WithOnActivate(func(k tree.Key, n *tree.Node) {
					calls++
					if k != keyC || n.Name != "C" {
						t.Errorf("activated %v (%s), want C", k, n.Name)
					}
				}))
			c, _ := s.Scene().Node(keyC)
			if _, ok := s.Click(s.Scene().ScreenPoint(c)); !ok {
				t.Fatal("click on C missed")
			}
			if calls != tt.want {
				t.Errorf("activations = %d, want %d", calls, tt.want)
			}
			if len(s.Scene().Nodes) != 3 {
				t.Errorf("leaf click changed the hierarchy: %d nodes", len(s.Scene().Nodes))
			}
		})
	}
}

func TestSessionActivateBranch(t *testing.T) {
	var got []tree.Key
	s := NewSession(lotTree(), 1000, 600, WithOnActivate(func(k tree.Key, _ *tree.Node) {
		got = append(got, k)
	}))
	s.Toggle(tree.RootKey)
	if len(got) != 1 || got[0] != tree.RootKey {
		t.Errorf("activations = %v, want [root]", got)
	}
}

func TestSessionClickMiss(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	if _, ok := s.Click(viewport.Point{X: 2, Y: 590}); ok {
		t.Error("click on empty space should miss")
	}
}

func TestSessionZoomClamp(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	for i := 0; i < 5; i++ {
		s.Zoom(viewport.ScaleOptions{ScaleX: 10, ScaleY: 10})
		m := s.Transform()
		if m.ScaleX != 4 || m.ScaleY != 4 {
			t.Fatalf("after zoom %d scale = (%v, %v), want (4, 4)", i, m.ScaleX, m.ScaleY)
		}
	}
	for i := 0; i < 20; i++ {
		s.ZoomOut()
	}
	if m := s.Transform(); m.ScaleX != 0.5 {
		t.Errorf("scale = %v, want 0.5", m.ScaleX)
	}
}

func TestSessionZoomKeepsCenter(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	center := viewport.Point{X: 500, Y: 300}
	before := s.Transform().ApplyInverse(center)
	s.ZoomIn()
	after := s.Transform().ApplyInverse(center)
	if d := before.X - after.X + before.Y - after.Y; d > 1e-9 || d < -1e-9 {
		t.Errorf("centre moved from %+v to %+v", before, after)
	}
	if got := s.Transform().ScaleX; got != 1.2 {
		t.Errorf("scale = %v, want 1.2", got)
	}
}

func TestSessionDrag(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	before := s.Transform()

	s.DragMove(viewport.Point{X: 50, Y: 50})
	if s.Transform() != before {
		t.Error("DragMove without DragStart should not pan")
	}

	s.DragStart(viewport.Point{X: 10, Y: 20})
	s.DragMove(viewport.Point{X: 40, Y: 25})
	s.DragMove(viewport.Point{X: 110, Y: 70})
	s.DragEnd()

	got := s.Transform()
	if got.TranslateX != before.TranslateX+100 || got.TranslateY != before.TranslateY+50 {
		t.Errorf("translate = (%v, %v), want (%v, %v)",
			got.TranslateX, got.TranslateY, before.TranslateX+100, before.TranslateY+50)
	}
}

func TestSessionPointerLeaveEndsDrag(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	s.DragStart(viewport.Point{})
	s.DragMove(viewport.Point{X: 5, Y: 5})
	s.PointerLeave()
	if s.IsDragging() {
		t.Fatal("PointerLeave should end the drag")
	}
	at := s.Transform()
	s.DragMove(viewport.Point{X: 100, Y: 100})
	if s.Transform() != at {
		t.Error("DragMove after PointerLeave should not pan")
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	initial := s.Transform()
	s.Wheel(viewport.Point{X: 300, Y: 100}, -1)
	s.Pan(33, -12)
	s.DoubleClick(viewport.Point{X: 10, Y: 10})
	s.DragStart(viewport.Point{})
	s.Reset()
	if s.Transform() != initial {
		t.Errorf("Reset() = %v, want %v", s.Transform(), initial)
	}
	if s.IsDragging() {
		t.Error("Reset should abandon the drag")
	}
	if want := viewport.Translate(80, 10); initial != want {
		t.Errorf("initial = %v, want %v", initial, want)
	}
}

func TestSessionWithTransform(t *testing.T) {
	start := viewport.Matrix{ScaleX: 2, ScaleY: 2, TranslateX: -40, TranslateY: 25}
	s := NewSession(lotTree(), 1000, 600, WithTransform(start))
	if s.Transform() != start {
		t.Errorf("Transform() = %v, want %v", s.Transform(), start)
	}
	if s.Scene().Transform != start {
		t.Errorf("scene transform = %v, want %v", s.Scene().Transform, start)
	}
	s.Reset()
	if want := viewport.Translate(80, 10); s.Transform() != want {
		t.Errorf("Reset() = %v, want %v", s.Transform(), want)
	}

	clamped := NewSession(lotTree(), 1000, 600, WithTransform(viewport.Scale(10, 10)))
	if got := clamped.Transform().ScaleX; got != viewport.DefaultScaleMax {
		t.Errorf("scale = %v, want clamp to %v", got, viewport.DefaultScaleMax)
	}
}

func TestSessionListenersSeeCurrentScene(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	var seen []Scene
	unsubscribe := s.Subscribe(func(sc Scene) {
		seen = append(seen, sc)
		if sc.Transform != s.Transform() {
			t.Errorf("listener saw transform %v, session has %v", sc.Transform, s.Transform())
		}
		if len(sc.Nodes) != len(s.Scene().Nodes) {
			t.Errorf("listener saw %d nodes, session has %d", len(sc.Nodes), len(s.Scene().Nodes))
		}
	})

	s.ZoomIn()
	s.Toggle(tree.KeyFor([]int{0}))
	s.Pan(10, 10)
	s.Resize(800, 500)
	s.Reset()

	if len(seen) != 5 {
		t.Errorf("notifications = %d, want 5", len(seen))
	}
	overlay, _ := OverlayTransform(s.Transform(), s.Config().Margins)
	if last := seen[len(seen)-1]; last.Minimap.Overlay != overlay {
		t.Errorf("last overlay = %v, want %v", last.Minimap.Overlay, overlay)
	}

	unsubscribe()
	s.ZoomIn()
	if len(seen) != 5 {
		t.Errorf("notified after unsubscribe: %d", len(seen))
	}
}

func TestSessionResizeBelowThreshold(t *testing.T) {
	s := NewSession(lotTree(), 1000, 600)
	s.Resize(50, 600)
	if !s.Scene().Empty {
		t.Error("50 wide container should be empty")
	}
	s.Resize(400, 300)
	if s.Scene().Empty || len(s.Scene().Nodes) != 3 {
		t.Errorf("scene after growing = %+v", s.Scene())
	}
}
