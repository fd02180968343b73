package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/boxdrop/internal/scene"
)

const (
	orbitStep = 0.08
	zoomStep  = 2.0
)

// Engine renders scenes as text and runs its loop as a bubbletea program.
type Engine struct {
	surface scene.Surface
	width   int
	height  int
	fps     int
	opts    []tea.ProgramOption

	view   string
	camera *scene.ArcRotateCamera
}

// NewEngine binds an engine to surface. Extra program options are passed to
// bubbletea, which lets callers redirect input and output.
func NewEngine(surface scene.Surface, fps int, opts ...tea.ProgramOption) (*Engine, error) {
	if surface == nil {
		return nil, scene.ErrNoSurface
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	w, h := surface.Size()
	return &Engine{surface: surface, width: w, height: h, fps: fps, opts: opts}, nil
}

func (e *Engine) Surface() scene.Surface { return e.surface }
func (e *Engine) Close() error           { return nil }
func (e *Engine) View() string           { return e.view }

func (e *Engine) Resize(width, height int) {
	e.width, e.height = max(width, 0), max(height, 0)
	if t, ok := e.surface.(*Terminal); ok {
		t.width, t.height = e.width, e.height
	}
}

// Draw renders s into the engine's view, leaving the last row for status.
func (e *Engine) Draw(s *scene.Scene) error {
	e.camera = s.ActiveCamera()
	rows := e.height - 1
	if e.width <= 0 || rows <= 0 || e.camera == nil {
		e.view = ""
		return nil
	}

	var layers []layer
	for _, m := range s.Meshes() {
		c := NewCanvas(e.width, rows)
		w, h := c.Dots()
		NewProjector(e.camera, w, h).DrawMesh(c, m)
		layers = append(layers, layer{canvas: c, color: shade(s, m)})
	}

	bg := hex(s.ClearColor)
	var b strings.Builder
	for row := 0; row < rows; row++ {
		writeRow(&b, layers, row, e.width, bg)
		b.WriteByte('\n')
	}
	b.WriteString(e.status(s))
	e.view = b.String()
	return nil
}

type layer struct {
	canvas *Canvas
	color  lipgloss.Color
}

// writeRow emits one row, grouping consecutive cells of the same color into
// one styled run. Later meshes are drawn over earlier ones.
func writeRow(b *strings.Builder, layers []layer, row, width int, bg lipgloss.Color) {
	var run strings.Builder
	var runColor lipgloss.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		st := lipgloss.NewStyle().Background(bg)
		if runColor != "" {
			st = st.Foreground(runColor)
		}
		b.WriteString(st.Render(run.String()))
		run.Reset()
	}

	for col := 0; col < width; col++ {
		ch, color := ' ', lipgloss.Color("")
		for i := len(layers) - 1; i >= 0; i-- {
			if layers[i].canvas.Lit(col, row) {
				ch, color = layers[i].canvas.Cell(col, row), layers[i].color
				break
			}
		}
		if color != runColor {
			flush()
			runColor = color
		}
		run.WriteRune(ch)
	}
	flush()
}

func shade(s *scene.Scene, m *scene.Mesh) lipgloss.Color {
	c := m.Color()
	if lights := s.Lights(); len(lights) > 0 {
		c = lights[0].Shade(scene.V(0, 1, 0), c)
	}
	return hex(c)
}

func (e *Engine) status(s *scene.Scene) string {
	parts := []string{TitleStyle.Render("boxdrop"), metric("t", fmt.Sprintf("%.2fs", s.Elapsed()))}
	if p := s.PhysicsEngine(); p != nil {
		parts = append(parts, metric("physics", p.Name()))
	} else {
		parts = append(parts, StatusOff.Render("physics off"))
	}
	for _, imp := range s.Impostors() {
		if !imp.IsStatic() {
			parts = append(parts, metric(imp.Mesh.Name+".y", fmt.Sprintf("%.3f", imp.Mesh.Position.Y)))
		}
	}
	parts = append(parts, KeyHint.Render("[←→↑↓] orbit  [+/-] zoom  [q] quit"))
	return strings.Join(parts, "  ")
}

func (e *Engine) orbit(dAlpha, dBeta float64) {
	if e.camera != nil && e.camera.ControlsAttached() {
		e.camera.Orbit(dAlpha, dBeta)
	}
}

func (e *Engine) zoom(d float64) {
	if e.camera != nil && e.camera.ControlsAttached() {
		e.camera.Zoom(d)
	}
}

// RunRenderLoop runs the bubbletea program until the user quits, ctx is
// done, or a frame fails.
func (e *Engine) RunRenderLoop(ctx context.Context, h scene.LoopHandlers) error {
	m := newLoopModel(e, h)
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, e.opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if m.err != nil {
		return m.err
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

type tickMsg time.Time

type loopModel struct {
	engine   *Engine
	handlers scene.LoopHandlers
	interval time.Duration
	dt       float64
	err      error
}

func newLoopModel(e *Engine, h scene.LoopHandlers) *loopModel {
	return &loopModel{
		engine:   e,
		handlers: h,
		interval: time.Second / time.Duration(e.fps),
		dt:       1 / float64(e.fps),
	}
}

func (m *loopModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *loopModel) Init() tea.Cmd { return m.tick() }

func (m *loopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			m.engine.orbit(-orbitStep, 0)
		case "right":
			m.engine.orbit(orbitStep, 0)
		case "up":
			m.engine.orbit(0, -orbitStep)
		case "down":
			m.engine.orbit(0, orbitStep)
		case "+", "=":
			m.engine.zoom(-zoomStep)
		case "-":
			m.engine.zoom(zoomStep)
		}
	case tea.WindowSizeMsg:
		if m.handlers.Resize != nil {
			m.handlers.Resize(msg.Width, msg.Height)
		}
	case tickMsg:
		if m.handlers.Frame != nil {
			if err := m.handlers.Frame(m.dt); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *loopModel) View() string { return m.engine.View() }
