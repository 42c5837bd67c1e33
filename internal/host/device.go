package host

import (
	"sync"
	"time"
)

// Device aggregates the event loop and the services a watchface consumes.
//
// State setters (SetBattery, SetConnected) are safe from any goroutine.
// They update the cached reading and post a change event only when the
// reading actually changed.
type Device struct {
	loop   *Loop
	now    func() time.Time
	health *HealthStore

	mu        sync.Mutex
	battery   ChargeState
	connected bool
}

// DeviceOption configures a Device.
type DeviceOption func(*Device)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) DeviceOption {
	return func(d *Device) { d.now = now }
}

// WithBattery sets the initial battery reading.
func WithBattery(s ChargeState) DeviceOption {
	return func(d *Device) { d.battery = s }
}

// WithConnected sets the initial connection state.
func WithConnected(connected bool) DeviceOption {
	return func(d *Device) { d.connected = connected }
}

// WithLoop uses an existing loop instead of creating one.
func WithLoop(l *Loop) DeviceOption {
	return func(d *Device) { d.loop = l }
}

// NewDevice creates a device with a full battery and no companion.
func NewDevice(opts ...DeviceOption) *Device {
	d := &Device{
		now:     time.Now,
		battery: ChargeState{ChargePercent: 100},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.loop == nil {
		d.loop = NewLoop()
	}
	d.health = NewHealthStore(d.now)
	return d
}

// Loop returns the device's event loop.
func (d *Device) Loop() *Loop { return d.loop }

// Now returns the device's current wall-clock time.
func (d *Device) Now() time.Time { return d.now() }

// Store returns the health store, for feeding step data.
func (d *Device) Store() *HealthStore { return d.health }

// SetBattery records a new battery reading.
func (d *Device) SetBattery(s ChargeState) {
	d.mu.Lock()
	changed := d.battery != s
	d.battery = s
	d.mu.Unlock()
	if changed {
		d.loop.Post(BatteryEvent{State: s})
	}
}

// SetConnected records a new companion connection state.
func (d *Device) SetConnected(connected bool) {
	d.mu.Lock()
	changed := d.connected != connected
	d.connected = connected
	d.mu.Unlock()
	if changed {
		d.loop.Post(ConnectionEvent{Connected: connected})
	}
}

// Tick posts a tick event for t with the given changed units.
func (d *Device) Tick(t time.Time, units TimeUnits) {
	d.loop.Post(TickEvent{Time: t, Units: units})
}

func (d *Device) peekBattery() ChargeState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.battery
}

func (d *Device) peekConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Time returns the time service.
func (d *Device) Time() TimeService { return TimeService{d: d} }

// Battery returns the battery service.
func (d *Device) Battery() BatteryService { return BatteryService{d: d} }

// Connection returns the connection service.
func (d *Device) Connection() ConnectionService { return ConnectionService{d: d} }

// Health returns the health service.
func (d *Device) Health() HealthService { return HealthService{d: d} }

// TimeService provides the wall clock and tick notifications.
type TimeService struct{ d *Device }

// Now returns the current time.
func (s TimeService) Now() time.Time { return s.d.now() }

// Subscribe installs the tick handler for the given units.
func (s TimeService) Subscribe(units TimeUnits, h TickHandler) Subscription {
	return s.d.loop.SubscribeTick(units, h)
}

// BatteryService provides charge readings and change notifications.
type BatteryService struct{ d *Device }

// Peek returns the current reading.
func (s BatteryService) Peek() ChargeState { return s.d.peekBattery() }

// Subscribe installs the battery handler.
func (s BatteryService) Subscribe(h BatteryHandler) Subscription {
	return s.d.loop.SubscribeBattery(h)
}

// ConnectionService reports whether a companion app is connected.
type ConnectionService struct{ d *Device }

// Peek returns the current link state.
func (s ConnectionService) Peek() bool { return s.d.peekConnected() }

// Subscribe installs the companion connection handler.
func (s ConnectionService) Subscribe(h ConnectionHandler) Subscription {
	return s.d.loop.SubscribeConnection(h)
}

// HealthService exposes activity metrics.
type HealthService struct{ d *Device }

// MetricAccessible reports whether metric can be read over [start, end].
func (s HealthService) MetricAccessible(metric HealthMetric, start, end time.Time) AccessibilityMask {
	return s.d.health.Accessible(metric, start, end)
}

// SumToday returns today's running total for metric.
func (s HealthService) SumToday(metric HealthMetric) int {
	return s.d.health.SumToday(metric)
}
