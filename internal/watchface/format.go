package watchface

import (
	"fmt"
	"time"

	"github.com/muurk/simplr/internal/host"
)

// FormatClock renders t as 24-hour "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate renders t as abbreviated month and zero-padded day, "Mar 03".
func FormatDate(t time.Time) string {
	return t.Format("Jan 02")
}

// FormatBattery renders a charge reading. While charging the percentage is
// replaced by "+++".
func FormatBattery(percent int, charging bool) string {
	if charging {
		return "+++"
	}
	return fmt.Sprintf("%d%%", percent)
}

// FormatConnection renders the companion link state.
func FormatConnection(connected bool) string {
	if connected {
		return "connected"
	}
	return "disconnected"
}

// FormatSteps renders a step count.
func FormatSteps(count int) string {
	return fmt.Sprintf("%d steps", count)
}

// StepsToday returns the running step total for the day containing now, or
// zero when the health service says the metric cannot be read.
func StepsToday(h HealthService, now time.Time) int {
	mask := h.MetricAccessible(host.HealthMetricStepCount, host.StartOfDay(now), now)
	if !mask.Has(host.AccessibilityAvailable) {
		return 0
	}
	return h.SumToday(host.HealthMetricStepCount)
}
