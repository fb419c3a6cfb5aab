package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/diagram"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/expand"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/render/sink"
	"github.com/matzehuels/arbor/pkg/render/styles"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/viewport"
	"github.com/matzehuels/arbor/pkg/watch"
)

// One terminal cell covers cellWidth x cellHeight scene units.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
	statusRows = 2
	panCells   = 4
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		styleName string
		expansion string
		noMinimap bool
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a tree document interactively in the terminal",
		Long: `Explore a tree document in a full-screen terminal view.

Mouse:
  drag          pan
  wheel         zoom about the pointer
  click         expand or collapse a node
  double-click  zoom in about the pointer

Keys:
  + / -         zoom in / out about the centre
  0             reset the view
  arrows, hjkl  pan
  m             toggle the minimap
  q             quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New(errors.ErrCodeUnsupported, "explore needs an interactive terminal; use 'render -f text' instead")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if styleName == "" {
				styleName = cfg.Style
			}
			style, err := styles.ByName(styleName)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateExpansion(expansion); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), args[0], cfg, exploreOptions{
				style:     style,
				expansion: expansion,
				minimap:   cfg.Minimap.Enabled && !noMinimap,
				watch:     watchFile,
			})
		},
	}

	cmd.Flags().StringVar(&styleName, "style", "", "visual style: lots (default), paper")
	cmd.Flags().StringVar(&expansion, "expand", pipeline.ExpandDocument, "initial expansion: document, all, none")
	cmd.Flags().BoolVar(&noMinimap, "no-minimap", false, "hide the minimap")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload when the document changes")

	return cmd
}

type exploreOptions struct {
	style     styles.Style
	expansion string
	minimap   bool
	watch     bool
}

func (c *CLI) runExplore(ctx context.Context, path string, cfg config.Config, opts exploreOptions) error {
	root, err := tree.ReadFile(path)
	if err != nil {
		return err
	}
	state, err := pipeline.Expansion(root, pipeline.Options{Expansion: opts.expansion})
	if err != nil {
		return err
	}

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols, rows = pipeline.DefaultCols, pipeline.DefaultRows
	}
	m := newExploreModel(root, state, cfg, opts, cols, rows, c)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if opts.watch {
		w, err := watch.New(path)
		if err != nil {
			return err
		}
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.Run(watchCtx, func() {
			next, err := tree.ReadFile(path)
			if err != nil {
				p.Send(statusMsg("reload failed: " + errors.UserMessage(err)))
				return
			}
			p.Send(reloadMsg{root: next})
		})
	}

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}

type (
	reloadMsg struct{ root *tree.Node }
	statusMsg string
)

// clickTracker turns two presses on the same cell within a window into a
// double click.
type clickTracker struct {
	window   time.Duration
	last     time.Time
	col, row int
}

// press records a press and reports whether it completes a double click.
func (t *clickTracker) press(now time.Time, col, row int) bool {
	double := !t.last.IsZero() && now.Sub(t.last) <= t.window && col == t.col && row == t.row
	if double {
		t.last = time.Time{}
	} else {
		t.last, t.col, t.row = now, col, row
	}
	return double
}

type exploreModel struct {
	session *diagram.Session
	cfg     config.Config
	opts    exploreOptions
	cli     *CLI

	cols, rows int
	clicks     clickTracker
	now        func() time.Time

	pressed    bool
	moved      bool
	double     bool
	pressCol   int
	pressRow   int
	status     string
	cellStyles map[sink.CellKind]lipgloss.Style
}

func newExploreModel(root *tree.Node, state expand.State, cfg config.Config, opts exploreOptions, cols, rows int, c *CLI) *exploreModel {
	m := &exploreModel{
		cfg:        cfg,
		opts:       opts,
		cli:        c,
		cols:       cols,
		rows:       rows,
		clicks:     clickTracker{window: cfg.DoubleClickWindow()},
		now:        time.Now,
		cellStyles: cellStyles(opts.style.Palette()),
	}
	m.session = m.newSession(root, state)
	return m
}

func (m *exploreModel) newSession(root *tree.Node, state expand.State, extra ...diagram.SessionOption) *diagram.Session {
	w, h := m.sceneSize()
	opts := []diagram.SessionOption{
		diagram.WithConfig(m.cfg.Diagram()),
		diagram.WithExpansion(state),
		diagram.WithLogger(m.cli.Logger),
		diagram.WithOnActivate(func(_ tree.Key, n *tree.Node) {
			if !n.HasChildren() {
				m.status = "selected " + n.Label()
			}
		}),
	}
	return diagram.NewSession(root, w, h, append(opts, extra...)...)
}

// sceneSize converts the drawable terminal area to scene units.
func (m *exploreModel) sceneSize() (float64, float64) {
	return float64(m.cols) * cellWidth, float64(max(m.rows-statusRows, 0)) * cellHeight
}

func cellPoint(col, row int) viewport.Point {
	return viewport.Point{X: (float64(col) + 0.5) * cellWidth, Y: (float64(row) + 0.5) * cellHeight}
}

func (m *exploreModel) Init() tea.Cmd { return nil }

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.session.Resize(m.sceneSize())

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		m.pressed = false
		m.session.PointerLeave()

	case reloadMsg:
		m.session = m.newSession(msg.root, m.session.Expansion(), diagram.WithTransform(m.session.Transform()))
		m.status = "reloaded"

	case statusMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m *exploreModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	step := panCells * cellWidth
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "+", "=":
		m.session.ZoomIn()
	case "-", "_":
		m.session.ZoomOut()
	case "0":
		m.session.Reset()
	case "left", "h":
		m.session.Pan(step, 0)
	case "right", "l":
		m.session.Pan(-step, 0)
	case "up", "k":
		m.session.Pan(0, step/2)
	case "down", "j":
		m.session.Pan(0, -step/2)
	case "m":
		m.opts.minimap = !m.opts.minimap
	}
	return nil
}

func (m *exploreModel) handleMouse(msg tea.MouseMsg) {
	onStatus := msg.Y >= m.rows-statusRows
	// A release anywhere ends the gesture, even over the status rows.
	if msg.Action == tea.MouseActionRelease && m.pressed {
		m.release(cellPoint(msg.X, msg.Y), onStatus)
		return
	}
	if onStatus {
		return
	}
	p := cellPoint(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.session.Wheel(p, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.session.Wheel(p, 1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.double = m.clicks.press(m.now(), msg.X, msg.Y)
		if m.double {
			m.session.DoubleClick(p)
		}
		m.pressed, m.moved = true, false
		m.pressCol, m.pressRow = msg.X, msg.Y
		m.session.DragStart(p)

	case msg.Action == tea.MouseActionMotion && m.pressed:
		if msg.X != m.pressCol || msg.Y != m.pressRow {
			m.moved = true
		}
		m.session.DragMove(p)
	}
}

// release ends a press. It clicks only for a still press inside the
// diagram that did not complete a double click.
func (m *exploreModel) release(p viewport.Point, onStatus bool) {
	m.pressed = false
	m.session.DragEnd()
	if m.moved || m.double || onStatus {
		return
	}
	key, ok := m.session.Click(p)
	if !ok {
		return
	}
	if n, ok := m.session.Scene().Node(key); ok && n.Clickable {
		state := "collapsed"
		if m.session.Expansion().Expanded(key) {
			state = "expanded"
		}
		m.status = fmt.Sprintf("%s %s", state, n.Label)
	}
}

func (m *exploreModel) View() string {
	viewRows := max(m.rows-statusRows, 0)
	var rasterOpts []sink.RasterOption
	if !m.opts.minimap {
		rasterOpts = append(rasterOpts, sink.WithoutMinimapInset())
	}
	r := sink.Rasterize(m.session.Scene(), m.cols, viewRows, rasterOpts...)

	var b strings.Builder
	for row := 0; row < r.Rows; row++ {
		b.WriteString(m.renderRow(r.Row(row)))
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(StyleDim.Render("drag pan · wheel zoom · click toggle · +/- zoom · 0 reset · m minimap · q quit"))
	return b.String()
}

// renderRow styles runs of cells of the same kind in one pass.
func (m *exploreModel) renderRow(cells []sink.Cell) string {
	var b, run strings.Builder
	kind := sink.CellEmpty
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if st, ok := m.cellStyles[kind]; ok {
			b.WriteString(st.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for _, c := range cells {
		if c.Kind != kind {
			flush()
			kind = c.Kind
		}
		run.WriteRune(c.Rune)
	}
	flush()
	return b.String()
}

func (m *exploreModel) statusLine() string {
	t := m.session.Transform()
	scene := m.session.Scene()
	parts := []string{
		StyleNumber.Render(fmt.Sprintf("%.2f×", t.ScaleX)),
		StyleDim.Render(fmt.Sprintf("at %.0f,%.0f", t.TranslateX, t.TranslateY)),
		StyleDim.Render(fmt.Sprintf("%d nodes", len(scene.Nodes))),
	}
	if scene.Empty {
		parts = append(parts, StyleWarning.Render("window too small"))
	}
	if m.status != "" {
		parts = append(parts, StyleValue.Render(m.status))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// cellStyles maps raster cells to palette colours.
func cellStyles(p styles.Palette) map[sink.CellKind]lipgloss.Style {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return map[sink.CellKind]lipgloss.Style{
		sink.CellLink:        fg(p.LightPurple),
		sink.CellRoot:        fg(p.Peach).Bold(true),
		sink.CellBranch:      fg(p.Blue),
		sink.CellLeaf:        fg(p.Green),
		sink.CellMinimap:     lipgloss.NewStyle().Background(lipgloss.Color(p.Background2)),
		sink.CellMinimapLink: fg(p.LightPurple).Background(lipgloss.Color(p.Background2)),
		sink.CellMinimapNode: fg(p.Green).Background(lipgloss.Color(p.Background2)),
		sink.CellOverlay:     fg(p.White).Background(lipgloss.Color(p.Background2)),
	}
}
