package host

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Rect
		want  Rect
		empty bool
	}{
		{
			name: "contained",
			a:    NewRect(0, 0, 144, 168),
			b:    NewRect(0, 48, 144, 56),
			want: NewRect(0, 48, 144, 56),
		},
		{
			name: "negative origin clipped",
			a:    NewRect(0, 0, 144, 168),
			b:    NewRect(2, -2, 140, 20),
			want: NewRect(2, 0, 140, 18),
		},
		{
			name:  "disjoint",
			a:     NewRect(0, 0, 10, 10),
			b:     NewRect(20, 20, 5, 5),
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if tt.empty {
				if !got.Empty() {
					t.Errorf("Intersect() = %v, want empty", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Intersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"spring_bud", ColorSpringBud, false},
		{"Spring Bud", ColorSpringBud, false},
		{"springbud", ColorSpringBud, false},
		{"midnight-green", ColorMidnightGreen, false},
		{"ORANGE", ColorOrange, false},
		{"clear", ColorClear, false},
		{"mauve", ColorClear, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if ColorClear.Hex() != "" || !ColorClear.IsClear() {
		t.Error("ColorClear should have no hex value")
	}
	if ColorSpringBud.Hex() != "#AAFF00" {
		t.Errorf("ColorSpringBud.Hex() = %v", ColorSpringBud.Hex())
	}
}

func TestSystemFontFallback(t *testing.T) {
	if f := SystemFont(FontKeyBitham42Bold); !f.Numeric || f.Height != 42 {
		t.Errorf("SystemFont(BITHAM_42_BOLD) = %+v", f)
	}
	if f := SystemFont("NOPE"); f.Key != FontKeyGothic14 {
		t.Errorf("unknown key should fall back to Gothic 14, got %v", f.Key)
	}
}

func TestTextLayerDefaultsAndSetters(t *testing.T) {
	l := NewTextLayer(NewRect(0, 0, 144, 42))
	if l.TextColor() != ColorBlack || l.BackgroundColor() != ColorWhite {
		t.Errorf("default colors = %v on %v", l.TextColor(), l.BackgroundColor())
	}
	if l.Font().Key != FontKeyGothic14 || l.TextAlignment() != AlignLeft {
		t.Errorf("default font/alignment = %v, %v", l.Font().Key, l.TextAlignment())
	}

	l.SetText("09:05")
	l.SetTextColor(ColorWhite)
	l.SetBackgroundColor(ColorClear)
	l.SetFont(SystemFont(FontKeyBitham42Bold))
	l.SetTextAlignment(AlignCenter)

	if l.Text() != "09:05" || l.TextColor() != ColorWhite || !l.BackgroundColor().IsClear() {
		t.Errorf("after setters: text %q, color %v, background %v", l.Text(), l.TextColor(), l.BackgroundColor())
	}
	if l.Font().Key != FontKeyBitham42Bold || l.TextAlignment() != AlignCenter {
		t.Errorf("after setters: font %v, alignment %v", l.Font().Key, l.TextAlignment())
	}
}

func TestTextLayerDestroy(t *testing.T) {
	w := NewWindow()
	l := NewTextLayer(NewRect(0, 0, 10, 10))
	w.AddChild(l)
	l.SetText("hello")

	l.Destroy()

	if len(w.Children()) != 0 {
		t.Errorf("destroyed layer should be detached, window has %d children", len(w.Children()))
	}
	l.SetText("ignored")
	if l.Text() != "" {
		t.Errorf("setters on destroyed layer should be ignored, text = %q", l.Text())
	}
	w.AddChild(l)
	if len(w.Children()) != 0 {
		t.Error("AddChild should refuse a destroyed layer")
	}
}

func TestWindowChildOrder(t *testing.T) {
	w := NewWindow()
	a := NewTextLayer(NewRect(0, 0, 1, 1))
	b := NewTextLayer(NewRect(0, 0, 1, 1))
	w.AddChild(a)
	w.AddChild(b)
	w.AddChild(a)

	got := w.Children()
	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Errorf("re-adding a child should move it to the top")
	}
}

func TestWindowStackLifecycle(t *testing.T) {
	var events []string
	mk := func(name string) *Window {
		w := NewWindow()
		w.SetHandlers(WindowHandlers{
			Load:   func(*Window) { events = append(events, "load "+name) },
			Unload: func(*Window) { events = append(events, "unload "+name) },
		})
		return w
	}

	s := NewWindowStack()
	a, b := mk("a"), mk("b")
	s.Push(a)
	s.Push(b)
	if s.Top() != b || a.Loaded() || !b.Loaded() {
		t.Fatal("only the top window should be loaded")
	}
	s.PopAll()

	want := []string{"load a", "unload a", "load b", "unload b", "load a", "unload a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if s.Pop() != nil {
		t.Error("Pop() on empty stack should return nil")
	}
}

func TestChangedUnits(t *testing.T) {
	base := time.Date(2024, 3, 3, 9, 5, 0, 0, time.UTC)
	tests := []struct {
		name string
		next time.Time
		want TimeUnits
	}{
		{"same", base, 0},
		{"second", base.Add(time.Second), SecondUnit},
		{"minute", base.Add(time.Minute), SecondUnit | MinuteUnit},
		{"hour", base.Add(time.Hour), SecondUnit | MinuteUnit | HourUnit},
		{"day", base.Add(24 * time.Hour), SecondUnit | MinuteUnit | HourUnit | DayUnit},
		{"year", base.AddDate(1, 0, 0), SecondUnit | MinuteUnit | HourUnit | DayUnit | MonthUnit | YearUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChangedUnits(base, tt.next); got != tt.want {
				t.Errorf("ChangedUnits() = %06b, want %06b", got, tt.want)
			}
		})
	}
}

func TestLoopSubscriptions(t *testing.T) {
	l := NewLoop()

	var ticks, batteries int
	tickSub := l.SubscribeTick(MinuteUnit, func(TickEvent) { ticks++ })
	batSub := l.SubscribeBattery(func(ChargeState) { batteries++ })

	l.Dispatch(TickEvent{Units: MinuteUnit | SecondUnit})
	l.Dispatch(TickEvent{Units: SecondUnit})
	l.Dispatch(BatteryEvent{})
	l.Dispatch(ConnectionEvent{Connected: true})

	if ticks != 1 {
		t.Errorf("ticks = %d, want 1 (second-only tick filtered)", ticks)
	}
	if batteries != 1 {
		t.Errorf("batteries = %d, want 1", batteries)
	}
	if l.Subscribed() != 2 {
		t.Errorf("Subscribed() = %d, want 2", l.Subscribed())
	}

	tickSub.Cancel()
	tickSub.Cancel()
	l.Dispatch(TickEvent{Units: MinuteUnit})
	if ticks != 1 {
		t.Error("cancelled tick handler was invoked")
	}

	// A replaced subscription no longer owns the slot.
	replacement := l.SubscribeBattery(func(ChargeState) {})
	if batSub.Active() {
		t.Error("replaced subscription should be inactive")
	}
	batSub.Cancel()
	if !replacement.Active() {
		t.Error("cancelling a stale handle must not remove the replacement")
	}
}

func TestLoopRunAndStop(t *testing.T) {
	l := NewLoop()
	done := make(chan struct{})
	l.SubscribeConnection(func(bool) { close(done) })
	l.Post(ConnectionEvent{Connected: true})

	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("posted event was not dispatched")
	}

	l.Stop()
	if err := <-errc; !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Run() error = %v, want ErrLoopStopped", err)
	}
	l.Post(BatteryEvent{}) // must not block after Stop
}

func TestLoopSink(t *testing.T) {
	l := NewLoop()
	var got []Event
	l.SetSink(func(ev Event) { got = append(got, ev) })
	l.Post(ConnectionEvent{Connected: true})
	if len(got) != 1 {
		t.Fatalf("sink received %d events, want 1", len(got))
	}
	if ev, ok := got[0].(ConnectionEvent); !ok || !ev.Connected {
		t.Errorf("sink received %#v", got[0])
	}
}

func TestDevicePostsOnlyChanges(t *testing.T) {
	d := NewDevice(WithBattery(ChargeState{ChargePercent: 50}))
	var posted []Event
	d.Loop().SetSink(func(ev Event) { posted = append(posted, ev) })

	d.SetBattery(ChargeState{ChargePercent: 50})
	d.SetBattery(ChargeState{ChargePercent: 49})
	d.SetConnected(false)
	d.SetConnected(true)

	if len(posted) != 2 {
		t.Fatalf("posted %d events, want 2: %#v", len(posted), posted)
	}
	if got := d.Battery().Peek().ChargePercent; got != 49 {
		t.Errorf("Peek().ChargePercent = %d, want 49", got)
	}
	if !d.Connection().Peek() {
		t.Error("Connection().Peek() = false, want true")
	}
}

func TestHealthStore(t *testing.T) {
	now := time.Date(2024, 3, 3, 9, 5, 0, 0, time.UTC)
	h := NewHealthStore(func() time.Time { return now })
	start := StartOfDay(now)

	h.Add(now, 120)
	h.Add(now.Add(-time.Hour), 30)
	h.Add(now.AddDate(0, 0, -1), 999)
	h.Add(now, -5)

	if got := h.SumToday(HealthMetricStepCount); got != 150 {
		t.Errorf("SumToday() = %d, want 150", got)
	}
	if got := h.SumToday(HealthMetricActiveSeconds); got != 0 {
		t.Errorf("SumToday(ActiveSeconds) = %d, want 0", got)
	}

	tests := []struct {
		name       string
		metric     HealthMetric
		start, end time.Time
		want       AccessibilityMask
	}{
		{"today", HealthMetricStepCount, start, now, AccessibilityAvailable},
		{"future end", HealthMetricStepCount, start, now.Add(time.Hour), AccessibilityNotAvailable},
		{"yesterday", HealthMetricStepCount, start.Add(-time.Hour), now, AccessibilityNotAvailable},
		{"unsupported", HealthMetricWalkedDistanceMeters, start, now, AccessibilityNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Accessible(tt.metric, tt.start, tt.end); got != tt.want {
				t.Errorf("Accessible() = %v, want %v", got, tt.want)
			}
		})
	}

	h.SetPermitted(false)
	if got := h.Accessible(HealthMetricStepCount, start, now); got != AccessibilityNoPermission {
		t.Errorf("Accessible() without permission = %v", got)
	}

	h.SetTotal(now, 10)
	if got := h.SumToday(HealthMetricStepCount); got != 10 {
		t.Errorf("SumToday() after SetTotal = %d, want 10", got)
	}

	h.Prune(now)
	h.SetPermitted(true)
	h.mu.Lock()
	n := len(h.steps)
	h.mu.Unlock()
	if n != 1 {
		t.Errorf("Prune left %d days, want 1", n)
	}
}

func TestMinuteTicker(t *testing.T) {
	clock := time.Date(2024, 3, 3, 9, 5, 30, 0, time.UTC)
	d := NewDevice(WithClock(func() time.Time { return clock }))

	fire := make(chan time.Time)
	waits := make(chan time.Duration, 4)
	m := NewMinuteTicker(d)
	m.after = func(wait time.Duration) <-chan time.Time {
		select {
		case waits <- wait:
		default:
		}
		return fire
	}

	ticks := make(chan TickEvent, 1)
	d.Loop().SetSink(func(ev Event) {
		if te, ok := ev.(TickEvent); ok {
			ticks <- te
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = m.Run(ctx) }()

	if first := <-waits; first != 30*time.Second {
		t.Errorf("first wait = %v, want 30s", first)
	}
	clock = clock.Add(30 * time.Second)
	fire <- clock

	select {
	case te := <-ticks:
		if !te.Time.Equal(time.Date(2024, 3, 3, 9, 6, 0, 0, time.UTC)) {
			t.Errorf("tick time = %v", te.Time)
		}
		if te.Units&MinuteUnit == 0 {
			t.Errorf("tick units = %06b, want minute bit", te.Units)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick posted")
	}
}

func TestMinuteTickerPrunesAtMidnight(t *testing.T) {
	clock := time.Date(2024, 3, 3, 23, 59, 30, 0, time.UTC)
	d := NewDevice(WithClock(func() time.Time { return clock }))
	d.Store().Add(clock, 4200)

	fire := make(chan time.Time)
	waiting := make(chan struct{}, 4)
	m := NewMinuteTicker(d)
	m.after = func(time.Duration) <-chan time.Time {
		select {
		case waiting <- struct{}{}:
		default:
		}
		return fire
	}

	ticks := make(chan TickEvent, 1)
	d.Loop().SetSink(func(ev Event) {
		if te, ok := ev.(TickEvent); ok {
			ticks <- te
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = m.Run(ctx) }()

	<-waiting
	clock = clock.Add(30 * time.Second)
	fire <- clock

	select {
	case te := <-ticks:
		if te.Units&DayUnit == 0 {
			t.Errorf("tick units = %06b, want day bit", te.Units)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick posted")
	}

	d.Store().mu.Lock()
	n := len(d.Store().steps)
	d.Store().mu.Unlock()
	if n != 0 {
		t.Errorf("store kept %d days after midnight, want 0", n)
	}
}

func TestUntilNextMinute(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 45, 0, time.UTC)
	if got := UntilNextMinute(at); got != 15*time.Second {
		t.Errorf("UntilNextMinute() = %v, want 15s", got)
	}
	if got := UntilNextMinute(at.Truncate(time.Minute)); got != time.Minute {
		t.Errorf("UntilNextMinute() on boundary = %v, want 1m", got)
	}
}
