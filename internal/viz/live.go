package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/render"
	"github.com/san-kum/vortsim/pkg/vortex"
)

const (
	historyCapacity = 240
	frameRate       = 30

	canvasPadX = 2
	canvasPadY = 1
	panelWidth = 44

	defaultRows = 20
	minRows     = 4
	gifCellSize = 2

	adjustFactor = 1.25
	minDt        = 0.05
	maxDt        = 4.0
	minViscosity = 1e-6
	maxViscosity = 0.05
	minStrength  = 1.0
	maxStrength  = 500.0

	DefaultGIFPath = "vortsim.gif"
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives one simulation from the terminal: it steps on every tick,
// injects vorticity where the mouse is pressed and shows diagnostics.
type Model struct {
	sim      *vortex.Simulation
	cfg      *config.Config
	dt       float64
	strength float64

	cols, rows int
	palette    *render.Palette
	scale      render.Scale

	running   bool
	showHelp  bool
	recording bool
	recorder  *render.GIFRecorder
	GIFPath   string

	diag      vortex.Diagnostics
	enstrophy []float64
	drift     []float64
	start     float64
	note      string
}

// NewModel wraps sim, which must already be seeded from cfg. cfg is reused
// to reseed on reset.
func NewModel(sim *vortex.Simulation, cfg *config.Config, paletteName string) (Model, error) {
	p, err := render.NewPalette(paletteName)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		sim:       sim,
		cfg:       cfg,
		dt:        cfg.Dt,
		strength:  config.DefaultStrength,
		cols:      2 * defaultRows,
		rows:      defaultRows,
		palette:   p,
		scale:     render.MinMax,
		running:   true,
		recorder:  render.NewGIFRecorder(100 / frameRate),
		GIFPath:   DefaultGIFPath,
		enstrophy: make([]float64, 0, historyCapacity),
		drift:     make([]float64, 0, historyCapacity),
	}
	m.refresh()
	m.start = m.diag.Circulation
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "n":
		if !m.running {
			m.step()
		}
	case "r":
		m.reset()
	case "up", "k":
		m.scaleViscosity(adjustFactor)
	case "down", "j":
		m.scaleViscosity(1 / adjustFactor)
	case "right", "l":
		m.dt = clampFloat(m.dt*adjustFactor, minDt, maxDt)
	case "left", "h":
		m.dt = clampFloat(m.dt/adjustFactor, minDt, maxDt)
	case "+", "=":
		m.strength = clampFloat(m.strength*adjustFactor, minStrength, maxStrength)
	case "-", "_":
		m.strength = clampFloat(m.strength/adjustFactor, minStrength, maxStrength)
	case "t":
		m.cyclePalette()
	case "s":
		if m.scale == render.MinMax {
			m.scale = render.Symmetric
		} else {
			m.scale = render.MinMax
		}
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.recorder.Reset()
			m.note = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse injects at the cell under the pointer. Shift or the right
// button injects negative (clockwise) vorticity; dragging keeps injecting.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
	default:
		return
	}
	var sign float64
	switch msg.Button {
	case tea.MouseButtonLeft:
		sign = 1
	case tea.MouseButtonRight:
		sign = -1
	default:
		return
	}
	if msg.Shift {
		sign = -sign
	}

	col, row := msg.X-canvasPadX, msg.Y-canvasPadY
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return
	}
	x, y := render.CellAt(m.sim.Resolution(), m.cols, m.rows, col, row)
	m.sim.Inject(x, y, sign*m.strength)
	m.refresh()
}

func (m *Model) resize(width, height int) {
	rows := height - 2*canvasPadY
	if byWidth := (width - panelWidth - 2*canvasPadX - 2) / 2; byWidth < rows {
		rows = byWidth
	}
	m.rows = max(rows, minRows)
	m.cols = 2 * m.rows
}

func (m *Model) step() {
	m.sim.Step(m.dt)
	m.refresh()

	m.enstrophy = appendCapped(m.enstrophy, m.diag.Enstrophy)
	drift := m.diag.Circulation - m.start
	if math.Abs(m.start) > 1e-12 {
		drift /= math.Abs(m.start)
	}
	m.drift = appendCapped(m.drift, drift)

	if m.recording {
		m.recorder.Add(render.Image(m.sim.Grid(), m.sim.Snapshot(), m.palette, m.scale, gifCellSize))
	}
}

func (m *Model) refresh() {
	m.diag = m.sim.Diagnostics()
}

func (m *Model) reset() {
	m.sim.Reset()
	m.cfg.Seed(m.sim)
	m.enstrophy = m.enstrophy[:0]
	m.drift = m.drift[:0]
	m.refresh()
	m.start = m.diag.Circulation
	m.note = ""
}

func (m *Model) scaleViscosity(factor float64) {
	nu := clampFloat(m.sim.Viscosity()*factor, minViscosity, maxViscosity)
	if err := m.sim.SetViscosity(nu); err != nil {
		m.note = err.Error()
	}
}

func (m *Model) cyclePalette() {
	names := render.PaletteNames()
	next := names[0]
	for i, name := range names {
		if name == m.palette.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if p, err := render.NewPalette(next); err == nil {
		m.palette = p
	}
}

func (m *Model) stopRecording() {
	m.recording = false
	frames := m.recorder.Len()
	if err := m.recorder.Save(m.GIFPath); err != nil {
		m.note = "gif: " + err.Error()
	} else {
		m.note = fmt.Sprintf("saved %d frames to %s", frames, m.GIFPath)
	}
	m.recorder.Reset()
}

func (m Model) View() string {
	canvas := render.Terminal(m.sim.Grid(), m.sim.Snapshot(), m.palette, m.scale, m.cols, m.rows)
	canvasView := canvasStyle.Render(canvas)

	var s strings.Builder
	g := m.sim.Grid()
	s.WriteString(headerStyle.Render(fmt.Sprintf("VORTSIM  %d×%d %s", g.N, g.N, g.Boundary)) + "\n")

	switch {
	case m.recording:
		s.WriteString(statusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len())))
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING"))
	default:
		s.WriteString(statusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	if len(m.enstrophy) > 1 {
		chart := asciigraph.Plot(m.enstrophy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Enstrophy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.diag.Frame))
	row("Viscosity", fmt.Sprintf("%.2e", m.sim.Viscosity()))
	s.WriteString(labelStyle.Render("") + gauge(viscosityFraction(m.sim.Viscosity()), 20) + "\n")
	row("dt", fmt.Sprintf("%.3f", m.dt))
	row("Strength", fmt.Sprintf("%.1f", m.strength))
	row("Circulation", fmt.Sprintf("%.4g", m.diag.Circulation))
	row("Drift", sparkline(m.drift, 20))
	row("Peak |ω|", fmt.Sprintf("%.4g", m.diag.Peak))
	row("Energy", fmt.Sprintf("%.4g", m.diag.KineticEnergy))
	row("Div", fmt.Sprintf("%.1e", m.diag.MaxDivergence))
	row("Palette", fmt.Sprintf("%s (%s)", m.palette.Name, scaleName(m.scale)))

	if m.note != "" {
		s.WriteString("\n" + noteStyle.Render(m.note) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nClick:+ω  Shift/Right:-ω\nSP:Pause R:Reset Q:Quit\n↑↓:ν ←→:dt +-:Strength\nG:Record T:Palette ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD & MOUSE            ║
╠══════════════════════════════════════╣
║  Click      - Inject vortex (+)      ║
║  Shift/Right- Inject vortex (-)      ║
║  Drag       - Keep injecting         ║
║  Space      - Pause/Resume           ║
║  N          - Single step (paused)   ║
║  R          - Reset to preset        ║
║  Up/Down    - Viscosity x/÷ 1.25     ║
║  Left/Right - Time step x/÷ 1.25     ║
║  +/-        - Injection strength     ║
║  T          - Cycle palette          ║
║  S          - Min/max or signed      ║
║  G          - Toggle GIF recording   ║
║  Q          - Quit                   ║
╚══════════════════════════════════════╝`

func scaleName(s render.Scale) string {
	if s == render.Symmetric {
		return "signed"
	}
	return "min/max"
}

// viscosityFraction places nu on a log scale between the adjustable bounds.
func viscosityFraction(nu float64) float64 {
	return math.Log(nu/minViscosity) / math.Log(maxViscosity/minViscosity)
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
