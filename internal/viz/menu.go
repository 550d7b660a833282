package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/vortsim/internal/config"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var resolutions = []int{64, 96, 128, 192, 256}

type setting int

const (
	settingResolution setting = iota
	settingBoundary
	settingStart
)

// App lets the user pick a preset, resolution and boundary before handing
// over to the live Model.
type App struct {
	state   int
	cursor  int
	presets []string
	base    *config.Config
	palette string

	chosen     string
	field      setting
	resolution int
	periodic   bool

	live Model
	err  error
}

func NewApp(base *config.Config, paletteName string) *App {
	res := 0
	for i, n := range resolutions {
		if n == base.Resolution {
			res = i
		}
	}
	return &App{
		state:      stateMenu,
		presets:    config.ListPresets(),
		base:       base,
		palette:    paletteName,
		resolution: res,
		periodic:   base.Boundary == "periodic",
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateSim {
		live, cmd := a.live.Update(msg)
		a.live = live.(Model)
		return a, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if a.state == stateMenu {
			return a.menuKey(msg)
		}
		return a.configKey(msg)
	}
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.live.resize(msg.Width, msg.Height)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.chosen = a.presets[a.cursor]
		a.state, a.field = stateConfig, settingResolution
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.field > settingResolution {
			a.field--
		}
	case "down", "j":
		if a.field < settingStart {
			a.field++
		}
	case "left", "h":
		a.adjust(-1)
	case "right", "l":
		a.adjust(1)
	case "enter", "s":
		if a.field == settingStart || msg.String() == "s" {
			return a.start()
		}
		a.adjust(1)
	}
	return a, nil
}

func (a *App) adjust(dir int) {
	switch a.field {
	case settingResolution:
		a.resolution = (a.resolution + dir + len(resolutions)) % len(resolutions)
	case settingBoundary:
		a.periodic = !a.periodic
	}
}

// Config returns the configuration the current selections describe.
func (a *App) Config() *config.Config {
	cfg := config.GetPreset(a.chosen)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Viscosity = a.base.Viscosity
	cfg.Dt = a.base.Dt
	cfg.PoissonSweeps = a.base.PoissonSweeps
	cfg.DiffusionSweeps = a.base.DiffusionSweeps
	cfg.Workers = a.base.Workers
	cfg.Correction = a.base.Correction
	cfg.Resolution = resolutions[a.resolution]
	cfg.Boundary = "wall"
	if a.periodic {
		cfg.Boundary = "periodic"
	}
	return cfg
}

func (a App) start() (App, tea.Cmd) {
	cfg := a.Config()
	sim, err := cfg.NewSimulation()
	if err != nil {
		a.err = err
		return a, nil
	}
	live, err := NewModel(sim, cfg, a.palette)
	if err != nil {
		a.err = err
		return a, nil
	}
	live.rows, live.cols = a.live.rows, a.live.cols
	if live.rows == 0 {
		live.rows, live.cols = defaultRows, 2*defaultRows
	}
	a.live, a.state, a.err = live, stateSim, nil
	return a, live.Init()
}

func (a App) View() string {
	switch a.state {
	case stateSim:
		return a.live.View()
	case stateConfig:
		return a.configView()
	}
	return a.menuView()
}

func (a App) menuView() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("VORTSIM") + "\n")
	s.WriteString(dimStyle.Render("2-D vorticity–streamfunction flow") + "\n\n")
	for i, name := range a.presets {
		line := fmt.Sprintf("%-8s %s", name, config.Presets[name].Description)
		if i == a.cursor {
			s.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("↑↓:Select  Enter:Choose  Q:Quit"))
	return s.String()
}

func (a App) configView() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(a.chosen)) + "\n")

	boundary := "wall"
	if a.periodic {
		boundary = "periodic"
	}
	items := []struct{ label, value string }{
		{"Resolution", fmt.Sprintf("◀ %d×%d ▶", resolutions[a.resolution], resolutions[a.resolution])},
		{"Boundary", fmt.Sprintf("◀ %s ▶", boundary)},
		{"Start", ""},
	}
	for i, it := range items {
		line := labelStyle.Render(it.label) + valueStyle.Render(it.value)
		if setting(i) == a.field {
			s.WriteString(cursorStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if a.err != nil {
		s.WriteString("\n" + noteStyle.Render(a.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("↑↓:Field  ←→:Change  S:Start  Esc:Back"))
	return s.String()
}
