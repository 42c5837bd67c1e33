package host

import (
	"context"
	"time"
)

// MinuteTicker posts a TickEvent at every wall-clock minute boundary. At
// midnight it also drops step totals for earlier days.
type MinuteTicker struct {
	dev   *Device
	after func(time.Duration) <-chan time.Time
}

// NewMinuteTicker creates a ticker for dev.
func NewMinuteTicker(dev *Device) *MinuteTicker {
	return &MinuteTicker{dev: dev, after: time.After}
}

// UntilNextMinute returns the wait from t to the start of the next minute.
func UntilNextMinute(t time.Time) time.Duration {
	next := t.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(t)
}

// Run blocks until ctx is done.
func (m *MinuteTicker) Run(ctx context.Context) error {
	prev := m.dev.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.after(UntilNextMinute(m.dev.Now())):
		}
		now := m.dev.Now()
		units := ChangedUnits(prev, now)
		if units&MinuteUnit == 0 {
			// Woke early (clock adjustment); wait for the real boundary.
			continue
		}
		if units&DayUnit != 0 {
			m.dev.Store().Prune(now)
		}
		m.dev.Tick(now, units)
		prev = now
	}
}
