package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/scoped"
	"github.com/wippyai/scoped/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	leakedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	droppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type rowStatus int

const (
	statusLive rowStatus = iota
	statusLeaked
	statusDropped
)

// row tracks one registration made through the TUI, including the
// trampoline the bus received, so a stale invocation can be demonstrated
// after the registration is dropped.
type row struct {
	name   string
	reg    *scoped.Registration
	tramp  func(string) string
	status rowStatus
}

type modelState int

const (
	stateList modelState = iota
	stateName
)

// eventLog collects scope lifecycle events for display.
type eventLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *eventLog) OnScopeEvent(e scoped.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch e.Type {
	case scoped.EventRegistered:
		l.lines = append(l.lines, "registered "+short(e.Registration.String()))
	case scoped.EventDeregistered:
		l.lines = append(l.lines, "deregistered "+short(e.Registration.String()))
	case scoped.EventScopeEnd:
		l.lines = append(l.lines, "scope "+short(e.Scope.String())+" ended")
	}
}

func (l *eventLog) tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.lines) <= n {
		return append([]string(nil), l.lines...)
	}
	return append([]string(nil), l.lines[len(l.lines)-n:]...)
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type inspectModel struct {
	scope    *scoped.Scope
	bus      *bus
	log      *eventLog
	input    textinput.Model
	result   string
	errMsg   string
	rows     []row
	selected int
	fired    int
	state    modelState
}

func newInspectModel(scope *scoped.Scope, b *bus, log *eventLog) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "callback name"
	ti.Prompt = "name: "
	ti.Width = 30

	return &inspectModel{
		scope: scope,
		bus:   b,
		log:   log,
		input: ti,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateName {
		switch keyMsg.String() {
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				name = fmt.Sprintf("cb%d", len(m.rows))
			}
			m.addRegistration(name)
			m.input.Reset()
			m.state = stateList
			return m, nil
		case "esc":
			m.input.Reset()
			m.state = stateList
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case "r":
		m.state = stateName
		m.input.Focus()

	case "d":
		if r := m.current(); r != nil && r.status == statusLive {
			r.reg.Close()
			r.status = statusDropped
			m.errMsg = ""
		}

	case "l":
		if r := m.current(); r != nil && r.status == statusLive {
			// Abandon the handle; deregistration now happens at scope end.
			r.reg = nil
			r.status = statusLeaked
			m.errMsg = ""
		}

	case "f":
		m.fired++
		outs := m.bus.fire(fmt.Sprintf("event-%d", m.fired))
		m.result = strings.Join(outs, " | ")
		m.errMsg = ""

	case "x":
		if r := m.current(); r != nil {
			m.invokeRetained(r)
		}
	}

	return m, nil
}

func (m *inspectModel) current() *row {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	return &m.rows[m.selected]
}

func (m *inspectModel) addRegistration(name string) {
	var tramp func(string) string
	reg := scoped.Register(m.scope,
		func(msg string) string { return name + ": " + strings.ToUpper(msg) },
		func(cb func(string) string) int {
			tramp = cb
			return m.bus.register(cb)
		},
		m.bus.deregister,
	)
	m.rows = append(m.rows, row{name: name, reg: reg, tramp: tramp})
	m.selected = len(m.rows) - 1
}

// invokeRetained calls the trampoline the bus was handed, bypassing the
// bus's own bookkeeping. On a dropped registration this trips the misuse
// check, which is exactly what the demo wants to show.
func (m *inspectModel) invokeRetained(r *row) {
	defer func() {
		if rec := recover(); rec != nil {
			if err, ok := rec.(*errors.Error); ok {
				m.result = ""
				m.errMsg = err.Error()
				return
			}
			panic(rec)
		}
	}()
	m.result = r.tramp("direct-call")
	m.errMsg = ""
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("scoped inspector"))
	b.WriteString(fmt.Sprintf("  scope %s  live %d  bus %d\n\n",
		short(m.scope.ID().String()), m.scope.Len(), m.bus.len()))

	if m.state == stateName {
		b.WriteString("Register a callback:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter register • esc back"))
		return b.String()
	}

	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("no registrations yet") + "\n")
	}
	for i, r := range m.rows {
		line := r.name
		switch r.status {
		case statusLive:
			line = liveStyle.Render(line) + " live"
		case statusLeaked:
			line = leakedStyle.Render(line) + " leaked (deregisters at scope end)"
		case statusDropped:
			line = droppedStyle.Render(line) + " dropped"
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.result != "" {
		b.WriteString("\n" + resultStyle.Render(m.result) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	if tail := m.log.tail(5); len(tail) > 0 {
		b.WriteString("\n")
		for _, line := range tail {
			b.WriteString(helpStyle.Render("· "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r register • d drop • l leak • f fire • x call retained • ↑/↓ select • q quit"))
	return b.String()
}

func runInteractive() error {
	b := newBus()
	log := &eventLog{}

	return scoped.Enter(func(s *scoped.Scope) error {
		p := tea.NewProgram(newInspectModel(s, b, log), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}, scoped.WithObserver(log))
}
