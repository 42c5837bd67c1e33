package watchface

import (
	"go.uber.org/zap"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/logging"
)

// State is the lifecycle state of a Face.
type State int

const (
	StateUninitialized State = iota
	StateShown
	StateHidden
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateShown:
		return "shown"
	case StateHidden:
		return "hidden"
	default:
		return "uninitialized"
	}
}

// Readout is the visible content of the face.
type Readout struct {
	Time            string
	Date            string
	Battery         string
	Connection      string
	ConnectionColor host.Color
	Steps           string
}

// Face is the watchface lifecycle controller. It owns its regions and
// subscriptions for the duration of one load/unload cycle.
type Face struct {
	services Services
	theme    Theme

	state   State
	regions regions
	subs    []host.Subscription
}

// Option configures a Face.
type Option func(*Face)

// WithTheme overrides the default colors.
func WithTheme(t Theme) Option {
	return func(f *Face) { f.theme = t }
}

// New creates a face bound to the given services.
func New(s Services, opts ...Option) *Face {
	f := &Face{
		services: s,
		theme:    DefaultTheme(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Handlers returns window handlers that drive the face.
func (f *Face) Handlers() host.WindowHandlers {
	return host.WindowHandlers{
		Load:   f.Load,
		Unload: f.Unload,
	}
}

// State returns the lifecycle state.
func (f *Face) State() State { return f.state }

// Theme returns the colors in use.
func (f *Face) Theme() Theme { return f.theme }

// Load builds the regions on w, renders a snapshot of the current readings
// and subscribes to change notifications. Loading a face that is already
// shown does nothing.
func (f *Face) Load(w *host.Window) {
	if f.state == StateShown {
		return
	}
	w.SetBackgroundColor(f.theme.Background)
	f.regions = buildRegions(w.Bounds(), f.theme)

	f.handleConnection(f.services.Connection.Peek())
	now := f.services.Time.Now()
	f.handleTick(host.TickEvent{Time: now, Units: host.MinuteUnit})

	f.subs = append(f.subs,
		f.services.Time.Subscribe(host.MinuteUnit, f.handleTick),
		f.services.Battery.Subscribe(f.handleBattery),
		f.services.Connection.Subscribe(f.handleConnection),
	)

	f.regions.attach(w)
	f.handleBattery(f.services.Battery.Peek())

	f.state = StateShown
	logging.LogLifecycle("watchface", "loaded", zap.Time("now", now))
}

// Unload cancels subscriptions and releases the regions. Unloading a face
// that is not shown does nothing.
func (f *Face) Unload(w *host.Window) {
	if f.state != StateShown {
		return
	}
	for _, s := range f.subs {
		s.Cancel()
	}
	f.subs = nil
	f.regions.destroy()
	f.regions = regions{}
	f.state = StateHidden
	logging.LogLifecycle("watchface", "unloaded")
}

// Snapshot returns the current region contents. It is the zero Readout
// unless the face is shown.
func (f *Face) Snapshot() Readout {
	if f.state != StateShown {
		return Readout{}
	}
	return Readout{
		Time:            f.regions.time.Text(),
		Date:            f.regions.date.Text(),
		Battery:         f.regions.battery.Text(),
		Connection:      f.regions.connection.Text(),
		ConnectionColor: f.regions.connection.TextColor(),
		Steps:           f.regions.steps.Text(),
	}
}

func (f *Face) handleTick(ev host.TickEvent) {
	f.regions.time.SetText(FormatClock(ev.Time))
	f.regions.date.SetText(FormatDate(ev.Time))
	f.regions.steps.SetText(FormatSteps(StepsToday(f.services.Health, f.services.Time.Now())))
}

func (f *Face) handleBattery(s host.ChargeState) {
	f.regions.battery.SetText(FormatBattery(s.ChargePercent, s.IsCharging))
}

func (f *Face) handleConnection(connected bool) {
	f.regions.connection.SetText(FormatConnection(connected))
	f.regions.connection.SetTextColor(f.theme.ConnectionColor(connected))
}
