package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/logging"
	"github.com/muurk/simplr/internal/render"
	"github.com/muurk/simplr/internal/watchface"
)

// hostEventMsg carries an event posted to the host loop from another
// goroutine. Update dispatches it, so every handler runs on the bubbletea
// goroutine.
type hostEventMsg struct {
	ev host.Event
}

type showMsg struct{}

func logEvent(ev host.Event) {
	switch e := ev.(type) {
	case host.TickEvent:
		logging.LogEvent("tick", zap.Time("time", e.Time), zap.Int("units", int(e.Units)))
	case host.BatteryEvent:
		logging.LogEvent("battery", zap.Int("percent", e.State.ChargePercent), zap.Bool("charging", e.State.IsCharging))
	case host.ConnectionEvent:
		logging.LogEvent("connection", zap.Bool("connected", e.Connected))
	}
}

// Model is the bubbletea model that hosts the watchface window.
type Model struct {
	dev    *host.Device
	face   *watchface.Face
	window *host.Window
	stack  *host.WindowStack
	header *Header

	keys     keyMap
	help     help.Model
	simulate bool

	width    int
	height   int
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSimulation enables the keys that fake host events.
func WithSimulation(enabled bool) ModelOption {
	return func(m *Model) { m.simulate = enabled }
}

// WithHeader shows a header box above the watch screen.
func WithHeader(h *Header) ModelOption {
	return func(m *Model) { m.header = h }
}

// NewModel creates a model for face running on dev. The window is pushed
// when the program starts, or by calling Show.
func NewModel(dev *host.Device, face *watchface.Face, opts ...ModelOption) *Model {
	win := host.NewWindow()
	win.SetHandlers(face.Handlers())

	width, height := GetTerminalSize()
	m := &Model{
		dev:    dev,
		face:   face,
		window: win,
		stack:  host.NewWindowStack(),
		keys:   newKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.keys.setSimulation(m.simulate)
	m.help.Width = width
	return m
}

// Window returns the watchface window.
func (m *Model) Window() *host.Window { return m.window }

// Visible reports whether the watchface window is on top of the stack.
func (m *Model) Visible() bool { return m.stack.Top() == m.window }

// Show pushes the watchface window if it is not already visible.
func (m *Model) Show() {
	if !m.Visible() {
		m.stack.Push(m.window)
	}
}

// Hide pops the watchface window if it is visible.
func (m *Model) Hide() {
	if m.Visible() {
		m.stack.Pop()
	}
}

// Close unloads every window on the stack, the watchface included.
func (m *Model) Close() {
	m.stack.PopAll()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return showMsg{} }
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case showMsg:
		m.Show()
	case hostEventMsg:
		logEvent(msg.ev)
		m.dev.Loop().Dispatch(msg.ev)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Hide()
		return tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if m.Visible() {
			m.Hide()
		} else {
			m.Show()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Connection):
		connected := !m.dev.Connection().Peek()
		return m.deviceCmd(func() { m.dev.SetConnected(connected) })
	case key.Matches(msg, m.keys.Charging):
		s := m.dev.Battery().Peek()
		s.IsCharging = !s.IsCharging
		s.IsPlugged = s.IsCharging
		return m.deviceCmd(func() { m.dev.SetBattery(s) })
	case key.Matches(msg, m.keys.BatteryUp):
		return m.adjustBattery(10)
	case key.Matches(msg, m.keys.BatteryDown):
		return m.adjustBattery(-10)
	case key.Matches(msg, m.keys.Steps):
		now := m.dev.Now()
		return m.deviceCmd(func() {
			m.dev.Store().Add(now, 100)
			m.dev.Tick(now, host.MinuteUnit)
		})
	}
	return nil
}

func (m *Model) adjustBattery(delta int) tea.Cmd {
	s := m.dev.Battery().Peek()
	s.ChargePercent = min(max(s.ChargePercent+delta, 0), 100)
	return m.deviceCmd(func() { m.dev.SetBattery(s) })
}

// deviceCmd runs fn off the update goroutine. Device setters post back
// through the program, which would block if called from inside Update.
func (m *Model) deviceCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// Screen renders the watch screen inside its bezel.
func (m *Model) Screen() string {
	var body string
	if m.Visible() {
		body = render.Draw(m.window).View()
	} else {
		cols := host.ScreenWidth / render.CellWidth
		rows := host.ScreenHeight / render.CellHeight
		body = HiddenStyle.Width(cols).Height(rows).Render("hidden")
	}
	return BezelStyle.Render(body)
}

// Frame renders the header, if any, above the watch screen.
func (m *Model) Frame() string {
	if m.header == nil {
		return m.Screen()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.SetWidth(m.width).Render(), m.Screen())
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.Frame(), "", m.help.View(m.keys))
}
