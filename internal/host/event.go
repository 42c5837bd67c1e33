package host

import "time"

// TimeUnits is a bitmask of calendar fields. Tick subscriptions name the
// units they care about; tick events carry the units that changed.
type TimeUnits uint8

const (
	SecondUnit TimeUnits = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
	MonthUnit
	YearUnit
)

// ChangedUnits reports which calendar fields differ between prev and next.
// Finer units are always included when a coarser one changed.
func ChangedUnits(prev, next time.Time) TimeUnits {
	var u TimeUnits
	switch {
	case prev.Year() != next.Year():
		u |= YearUnit | MonthUnit | DayUnit | HourUnit | MinuteUnit
	case prev.Month() != next.Month():
		u |= MonthUnit | DayUnit | HourUnit | MinuteUnit
	case prev.Day() != next.Day():
		u |= DayUnit | HourUnit | MinuteUnit
	case prev.Hour() != next.Hour():
		u |= HourUnit | MinuteUnit
	case prev.Minute() != next.Minute():
		u |= MinuteUnit
	}
	if prev.Second() != next.Second() || u != 0 {
		u |= SecondUnit
	}
	return u
}

// ChargeState is a battery reading.
type ChargeState struct {
	ChargePercent int
	IsCharging    bool
	IsPlugged     bool
}

// Event is something delivered to application handlers on the loop
// goroutine.
type Event interface {
	kind() eventKind
}

type eventKind int

const (
	kindTick eventKind = iota
	kindBattery
	kindConnection
)

// TickEvent is posted when wall-clock fields change.
type TickEvent struct {
	Time  time.Time
	Units TimeUnits
}

// BatteryEvent is posted when the charge state changes.
type BatteryEvent struct {
	State ChargeState
}

// ConnectionEvent is posted when the companion link goes up or down.
type ConnectionEvent struct {
	Connected bool
}

func (TickEvent) kind() eventKind       { return kindTick }
func (BatteryEvent) kind() eventKind    { return kindBattery }
func (ConnectionEvent) kind() eventKind { return kindConnection }
