package watchface

import (
	"time"

	"github.com/muurk/simplr/internal/host"
)

// TimeSource provides the wall clock and tick notifications.
type TimeSource interface {
	Now() time.Time
	Subscribe(units host.TimeUnits, h host.TickHandler) host.Subscription
}

// BatterySource provides charge readings.
type BatterySource interface {
	Peek() host.ChargeState
	Subscribe(h host.BatteryHandler) host.Subscription
}

// ConnectionSource reports the companion link state.
type ConnectionSource interface {
	Peek() bool
	Subscribe(h host.ConnectionHandler) host.Subscription
}

// HealthService reports activity metrics.
type HealthService interface {
	MetricAccessible(metric host.HealthMetric, start, end time.Time) host.AccessibilityMask
	SumToday(metric host.HealthMetric) int
}

// Services bundles the host services the face consumes.
type Services struct {
	Time       TimeSource
	Battery    BatterySource
	Connection ConnectionSource
	Health     HealthService
}

// DeviceServices returns the services of a host device.
func DeviceServices(d *host.Device) Services {
	return Services{
		Time:       d.Time(),
		Battery:    d.Battery(),
		Connection: d.Connection(),
		Health:     d.Health(),
	}
}
