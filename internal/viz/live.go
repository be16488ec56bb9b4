package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// One committed step per frame, matching the original 50ms pacing.
const tickInterval = 50 * time.Millisecond

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the interactive live view: each tick commits one integration
// step and redraws the panel stack.
type Model struct {
	sys        kinetics.System
	integrator kinetics.Integrator
	x0         kinetics.State
	cfg        kinetics.Config
	poolNames  []string
	fluxNames  []string

	trace   *kinetics.Trace
	state   kinetics.State
	t       float64
	step    int
	running bool
	done    bool
	err     error
}

func NewModel(sys kinetics.System, integrator kinetics.Integrator, x0 kinetics.State, cfg kinetics.Config) Model {
	poolNames, fluxNames := SystemLabels(sys)
	m := Model{
		sys:        sys,
		integrator: integrator,
		x0:         x0.Clone(),
		cfg:        cfg,
		poolNames:  poolNames,
		fluxNames:  fluxNames,
		running:    true,
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.state = m.x0.Clone()
	m.t = m.cfg.T0
	m.step = 0
	m.done = false
	m.err = nil
	m.trace = kinetics.NewTrace(m.cfg.Steps + 1)

	_, aux, err := m.sys.Derive(m.state, m.t)
	if err != nil {
		m.err = err
		return
	}
	m.trace.Append(kinetics.Record{Time: m.t, State: m.state.Clone(), Aux: aux})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
			m.running = true
		}
	case TickMsg:
		if m.running && !m.done && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	newX, aux, err := m.integrator.Step(m.sys, m.state, m.t, m.cfg.Dt)
	if err != nil {
		m.err = err
		return
	}

	m.state = newX
	m.t += m.cfg.Dt
	m.step++
	m.trace.Append(kinetics.Record{Time: m.t, State: m.state.Clone(), Aux: aux})

	if m.step >= m.cfg.Steps {
		m.done = true
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("poolsim live"))
	b.WriteString("\n")
	b.WriteString(graphStyle.Render(RenderPanels(m.trace, m.poolNames, m.fluxNames, defaultPanelWidth, defaultPanelHeight)))
	b.WriteString("\n\n")
	b.WriteString(m.statsView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause/resume · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) statsView() string {
	lines := []string{
		labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)),
		labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.cfg.Steps)),
	}

	if m.trace.Len() > 0 {
		rec := m.trace.Last()
		pools := poolLabels(m.poolNames, len(rec.State))
		fluxes := fluxLabels(m.fluxNames, len(rec.Aux.Fluxes))
		for i, v := range rec.State {
			lines = append(lines, labelStyle.Render(pools[i])+valueStyle.Render(fmt.Sprintf("%.4f  (con %.4f)", v, rec.Aux.Concentrations[i])))
		}
		for i, v := range rec.Aux.Fluxes {
			lines = append(lines, labelStyle.Render(fluxes[i])+valueStyle.Render(fmt.Sprintf("%.4f", v)))
		}
	}

	switch {
	case m.err != nil:
		lines = append(lines, errorStyle.Render("halted: "+m.err.Error()))
	case m.done:
		lines = append(lines, statusStyle.Render("done"))
	case m.running:
		lines = append(lines, statusStyle.Render("running"))
	default:
		lines = append(lines, pausedStyle.Render("paused"))
	}

	return strings.Join(lines, "\n")
}

// RunLive starts the interactive live view and blocks until it exits.
func RunLive(sys kinetics.System, integrator kinetics.Integrator, x0 kinetics.State, cfg kinetics.Config) error {
	p := tea.NewProgram(NewModel(sys, integrator, x0, cfg))
	_, err := p.Run()
	return err
}
