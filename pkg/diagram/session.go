package diagram

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/expand"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
)

// ActivateFunc receives the node a click landed on.
type ActivateFunc func(key tree.Key, n *tree.Node)

// Listener receives every scene a Session produces.
type Listener func(Scene)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConfig replaces the default diagram configuration.
func WithConfig(cfg Config) SessionOption {
	return func(s *Session) { s.cfg = cfg.withDefaults() }
}

// WithOnActivate sets the click sink.
func WithOnActivate(fn ActivateFunc) SessionOption {
	return func(s *Session) { s.onActivate = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExpansion starts the session from the given expansion state instead
// of the flags authored in the document.
func WithExpansion(st expand.State) SessionOption {
	return func(s *Session) { s.state = &st }
}

// WithTransform starts the session at m instead of the initial transform.
// Reset still returns to the configured initial transform.
func WithTransform(m viewport.Matrix) SessionOption {
	return func(s *Session) { s.start = &m }
}

// Session is an interactive diagram: one viewport controller, one expansion
// state and the scene derived from both. It is not safe for concurrent use.
type Session struct {
	cfg        Config
	root       *tree.Node
	ctrl       *viewport.Controller
	state      *expand.State
	start      *viewport.Matrix
	hier       *hierarchy.Hierarchy
	scene      Scene
	width      float64
	height     float64
	listeners  map[int]Listener
	nextID     int
	onActivate ActivateFunc
	logger     *log.Logger
}

// NewSession creates a session for root in a width x height container.
func NewSession(root *tree.Node, width, height float64, opts ...SessionOption) *Session {
	s := &Session{
		cfg:       DefaultConfig(),
		root:      root,
		width:     width,
		height:    height,
		listeners: make(map[int]Listener),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == nil {
		st := expand.FromTree(root)
		s.state = &st
	}
	s.ctrl = viewport.New(s.cfg.Viewport(width, height))
	if s.start != nil {
		s.ctrl.SetTransform(*s.start)
	}
	s.relayout()
	return s
}

// Subscribe registers fn for every future scene and returns a function that
// removes it. fn is called synchronously from the event method.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Scene returns the current scene.
func (s *Session) Scene() Scene { return s.scene }

// Snapshot returns the inputs of the current scene.
func (s *Session) Snapshot() Snapshot {
	st := *s.state
	return Snapshot{
		Tree:      s.root,
		Expansion: &st,
		Transform: s.ctrl.Matrix(),
		Width:     s.width,
		Height:    s.height,
	}
}

// Expansion returns the current expansion state.
func (s *Session) Expansion() expand.State { return *s.state }

// Transform returns the current viewport matrix.
func (s *Session) Transform() viewport.Matrix { return s.ctrl.Matrix() }

// Config returns the diagram configuration.
func (s *Session) Config() Config { return s.cfg }

// Click handles a primary click at the screen point p. Nodes with children
// toggle; leaves follow the LeafClick policy. It reports the node hit.
func (s *Session) Click(p viewport.Point) (tree.Key, bool) {
	n, ok := s.scene.HitTest(p)
	if !ok {
		return "", false
	}
	s.activate(n)
	return n.Key, true
}

// Toggle expands or collapses the visible node with key as if it had been
// clicked. It reports whether the node is visible.
func (s *Session) Toggle(key tree.Key) bool {
	n, ok := s.scene.Node(key)
	if !ok {
		return false
	}
	s.activate(n)
	return true
}

// SetExpanded forces the expansion flag of key and re-lays out when it changes.
func (s *Session) SetExpanded(key tree.Key, expanded bool) {
	if s.state.Expanded(key) == expanded {
		return
	}
	next := s.state.Set(key, expanded)
	s.state = &next
	observability.Diagram().OnToggle(string(key), expanded)
	s.relayout()
}

func (s *Session) activate(n NodeView) {
	if n.Clickable {
		next := s.state.Toggle(n.Key)
		s.state = &next
		expanded := next.Expanded(n.Key)
		s.logger.Debug("toggled node", "name", n.Label, "expanded", expanded)
		observability.Diagram().OnToggle(string(n.Key), expanded)
		s.relayout()
	} else if s.cfg.LeafClick != LeafNotify {
		return
	}
	if s.onActivate != nil {
		s.onActivate(n.Key, n.Data)
	}
}

// Zoom scales the view by opts.
func (s *Session) Zoom(opts viewport.ScaleOptions) {
	s.ctrl.Scale(opts)
	s.transformed("zoom")
}

// ZoomIn scales by 1.2 about the container centre.
func (s *Session) ZoomIn() {
	c := s.ctrl.Center()
	s.ctrl.Scale(viewport.ScaleOptions{ScaleX: ZoomInFactor, Point: &c})
	s.transformed("zoom-in")
}

// ZoomOut scales by 0.8 about the container centre.
func (s *Session) ZoomOut() {
	c := s.ctrl.Center()
	s.ctrl.Scale(viewport.ScaleOptions{ScaleX: ZoomOutFactor, Point: &c})
	s.transformed("zoom-out")
}

// DoubleClick zooms in by 1.1 keeping p fixed.
func (s *Session) DoubleClick(p viewport.Point) {
	s.ctrl.Scale(viewport.ScaleOptions{ScaleX: DoubleClickFactor, Point: &p})
	s.transformed("double-click")
}

// Wheel zooms about p; negative deltaY zooms in.
func (s *Session) Wheel(p viewport.Point, deltaY float64) {
	s.ctrl.Wheel(p, deltaY)
	s.transformed("wheel")
}

// Pan moves the view by (dx, dy) screen units.
func (s *Session) Pan(dx, dy float64) {
	s.ctrl.Translate(dx, dy)
	s.transformed("pan")
}

// DragStart anchors a drag at p.
func (s *Session) DragStart(p viewport.Point) {
	s.ctrl.DragStart(p)
}

// DragMove pans so the drag anchor follows p.
func (s *Session) DragMove(p viewport.Point) {
	if !s.ctrl.IsDragging() {
		return
	}
	s.ctrl.DragMove(p)
	s.transformed("drag")
}

// DragEnd finishes the current drag.
func (s *Session) DragEnd() {
	s.ctrl.DragEnd()
}

// PointerLeave aborts a drag exactly like DragEnd.
func (s *Session) PointerLeave() {
	s.DragEnd()
}

// IsDragging reports whether a drag is in progress.
func (s *Session) IsDragging() bool { return s.ctrl.IsDragging() }

// Reset restores the initial transform.
func (s *Session) Reset() {
	s.ctrl.Reset()
	s.transformed("reset")
}

// Resize changes the container size and re-lays out the tree.
func (s *Session) Resize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.ctrl.Resize(width, height)
	s.relayout()
}

func (s *Session) transformed(gesture string) {
	m := s.ctrl.Matrix()
	observability.Diagram().OnTransform(gesture, m.ScaleX, m.ScaleY)
	s.recompose()
}

// relayout rebuilds the hierarchy and positions before recomposing.
func (s *Session) relayout() {
	start := time.Now()
	s.hier = Layout(s.Snapshot(), s.cfg)
	s.recompose()
	elapsed := time.Since(start)
	observability.Diagram().OnLayout(len(s.scene.Nodes), len(s.scene.Links), elapsed)
	s.logger.Debug("laid out diagram",
		"nodes", len(s.scene.Nodes),
		"links", len(s.scene.Links),
		"duration", elapsed)
}

// recompose rebuilds the scene from the cached hierarchy and the current
// transform, then notifies listeners.
func (s *Session) recompose() {
	s.scene = assemble(s.Snapshot(), s.cfg, s.hier)
	for _, id := range s.listenerIDs() {
		if fn, ok := s.listeners[id]; ok {
			fn(s.scene)
		}
	}
}

func (s *Session) listenerIDs() []int {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
