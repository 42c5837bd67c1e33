package host

import (
	"sync"
	"time"
)

// HealthMetric identifies a tracked activity value.
type HealthMetric int

const (
	HealthMetricStepCount HealthMetric = iota
	HealthMetricActiveSeconds
	HealthMetricWalkedDistanceMeters
)

// AccessibilityMask describes whether a metric can be read for a range.
type AccessibilityMask uint8

const (
	AccessibilityAvailable AccessibilityMask = 1 << iota
	AccessibilityNoPermission
	AccessibilityNotSupported
	AccessibilityNotAvailable
)

// Has reports whether all bits of flag are set.
func (m AccessibilityMask) Has(flag AccessibilityMask) bool {
	return m&flag == flag
}

// String implements fmt.Stringer
func (m AccessibilityMask) String() string {
	switch {
	case m.Has(AccessibilityAvailable):
		return "available"
	case m.Has(AccessibilityNoPermission):
		return "no_permission"
	case m.Has(AccessibilityNotSupported):
		return "not_supported"
	case m.Has(AccessibilityNotAvailable):
		return "not_available"
	default:
		return "none"
	}
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HealthStore keeps per-day step totals fed by the companion link.
//
// It is written from the companion goroutine and read from the loop
// goroutine, so it carries its own lock.
type HealthStore struct {
	mu        sync.Mutex
	now       func() time.Time
	permitted bool
	steps     map[string]int
}

// NewHealthStore creates an empty store. now is used to decide what
// "today" is.
func NewHealthStore(now func() time.Time) *HealthStore {
	if now == nil {
		now = time.Now
	}
	return &HealthStore{
		now:       now,
		permitted: true,
		steps:     make(map[string]int),
	}
}

// SetPermitted grants or revokes read access to health data.
func (h *HealthStore) SetPermitted(ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.permitted = ok
}

// Add records n additional steps taken at the given time. Non-positive
// counts are ignored.
func (h *HealthStore) Add(at time.Time, n int) {
	if n <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.steps[dayKey(at)] += n
}

// SetTotal overwrites the step total for the day containing day.
func (h *HealthStore) SetTotal(day time.Time, n int) {
	if n < 0 {
		n = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.steps[dayKey(day)] = n
}

// Accessible reports whether metric can be read over [start, end].
func (h *HealthStore) Accessible(metric HealthMetric, start, end time.Time) AccessibilityMask {
	if metric != HealthMetricStepCount {
		return AccessibilityNotSupported
	}
	h.mu.Lock()
	permitted := h.permitted
	now := h.now()
	h.mu.Unlock()
	if !permitted {
		return AccessibilityNoPermission
	}
	if end.Before(start) || end.After(now) || start.Before(StartOfDay(now)) {
		return AccessibilityNotAvailable
	}
	return AccessibilityAvailable
}

// SumToday returns the running total for today. Metrics other than the
// step count always sum to zero.
func (h *HealthStore) SumToday(metric HealthMetric) int {
	if metric != HealthMetricStepCount {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.steps[dayKey(h.now())]
}

// Prune drops totals for days before keep.
func (h *HealthStore) Prune(keep time.Time) {
	cutoff := dayKey(keep)
	h.mu.Lock()
	defer h.mu.Unlock()
	for k := range h.steps {
		if k < cutoff {
			delete(h.steps, k)
		}
	}
}
