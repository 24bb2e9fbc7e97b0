package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/experiment"
)

var experimentInfo = map[string]string{
	"projectile": "launch under gravity",
	"pendulum":   "damped swing",
	"collision":  "elastic impacts",
	"spring":     "hooke's law",
	"incline":    "forces on a ramp",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	headStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Lab is the full-screen app: pick an experiment, tune it, watch it run.
type Lab struct {
	state       int
	cursor      int
	names       []string
	registry    *experiment.Registry
	cfg         *config.Config
	base        *config.Config
	paramNames  []string
	paramCursor int
	preset      int
	editing     bool
	editBuf     string
	err         error
	live        Live
}

// NewLab starts at the experiment menu. base supplies dt, env and the
// starting parameter blocks.
func NewLab(registry *experiment.Registry, base *config.Config) Lab {
	return Lab{
		state:    stateMenu,
		names:    registry.List(),
		registry: registry,
		base:     base,
	}
}

func (m Lab) Init() tea.Cmd { return nil }

func (m Lab) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			next, cmd := m.live.Update(msg)
			m.live = next.(Live)
			return m, cmd
		}
	}
	return m, nil
}

func (m Lab) handleKey(msg tea.KeyMsg) (Lab, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		if msg.String() == "esc" {
			m.state = stateConfig
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Live)
		return m, cmd
	}
	return m, nil
}

func (m Lab) menuKey(msg tea.KeyMsg) (Lab, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selectExperiment(m.names[m.cursor])
	}
	return m, nil
}

func (m *Lab) selectExperiment(name string) {
	m.cfg = m.base.Clone()
	m.cfg.Experiment = name
	m.state, m.paramCursor, m.preset, m.err = stateConfig, 0, -1, nil
	m.refreshParams()
}

func (m *Lab) refreshParams() {
	params := m.cfg.Params()
	m.paramNames = make([]string, 0, len(params))
	for k := range params {
		if err := m.cfg.Clone().SetParam(k, params[k]); err == nil {
			m.paramNames = append(m.paramNames, k)
		}
	}
	sort.Strings(m.paramNames)
	if m.paramCursor >= len(m.paramNames) {
		m.paramCursor = 0
	}
}

func (m Lab) configKey(msg tea.KeyMsg) (Lab, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.err = m.cfg.SetParam(m.paramNames[m.paramCursor], val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	key := msg.String()
	if len(m.paramNames) == 0 {
		switch key {
		case "up", "k", "down", "j", "enter", " ", "left", "h", "right", "l":
			return m, nil
		}
	}
	switch key {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.cfg.Params()[m.paramNames[m.paramCursor]])
	case "left", "h":
		m.nudge(0.9)
	case "right", "l":
		m.nudge(1.1)
	case "p":
		m.nextPreset()
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *Lab) nudge(factor float64) {
	name := m.paramNames[m.paramCursor]
	val := m.cfg.Params()[name]
	if val == 0 {
		val = 0.1 / factor
	}
	m.err = m.cfg.SetParam(name, val*factor)
}

func (m *Lab) nextPreset() {
	presets := config.ListPresets(m.cfg.Experiment)
	if len(presets) == 0 {
		return
	}
	m.preset = (m.preset + 1) % len(presets)
	cfg := config.GetPreset(m.cfg.Experiment, presets[m.preset])
	cfg.Dt, cfg.Duration, cfg.MaxDt = m.base.Dt, m.base.Duration, m.base.MaxDt
	cfg.Env, cfg.Log = m.base.Env, m.base.Log
	m.cfg = cfg
	m.err = nil
	m.refreshParams()
}

func (m *Lab) start() tea.Cmd {
	exp, err := m.registry.Build(m.cfg)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.live = NewLive(exp, m.cfg.Dt, m.cfg.MaxDt)
	m.state = stateSim
	return m.live.Init()
}

func (m Lab) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View() + "\n" + subStyle.Render("  esc back to setup")
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return strings.TrimRight(b.String(), " ")
}

func (m Lab) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headStyle.Render("MECHLAB") + "\n    " + subStyle.Render("newtonian mechanics lab") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.names {
		desc := experimentInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), idleDescStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m Lab) viewConfig() string {
	var b strings.Builder
	title := Title(m.cfg.Experiment)
	if presets := config.ListPresets(m.cfg.Experiment); m.preset >= 0 && m.preset < len(presets) {
		title += " · " + presets[m.preset]
	}
	b.WriteString("\n\n    " + headStyle.Render(title) + "\n    " + subStyle.Render(experimentInfo[m.cfg.Experiment]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")

	params := m.cfg.Params()
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%10.3f", params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), idleDescStyle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "p", "preset", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunLab runs the lab full screen until the user quits.
func RunLab(registry *experiment.Registry, base *config.Config) error {
	_, err := tea.NewProgram(NewLab(registry, base), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs a single experiment full screen.
func RunLive(exp experiment.Experiment, dt, maxDt float64) error {
	_, err := tea.NewProgram(NewLive(exp, dt, maxDt), tea.WithAltScreen()).Run()
	return err
}
