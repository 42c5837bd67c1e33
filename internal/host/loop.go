package host

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Run when Stop was called.
var ErrLoopStopped = errors.New("event loop stopped")

// DefaultQueueSize is the buffer of the internal event queue used by Run.
const DefaultQueueSize = 64

// Sink receives events posted from other goroutines. A UI framework that
// owns the main goroutine installs a sink that forwards events into its own
// message queue and calls Dispatch when they come back out.
type Sink func(Event)

// TickHandler receives minute (or other unit) ticks.
type TickHandler func(t TickEvent)

// BatteryHandler receives battery changes.
type BatteryHandler func(s ChargeState)

// ConnectionHandler receives connection changes.
type ConnectionHandler func(connected bool)

// Loop is the single-threaded dispatcher for application handlers.
//
// Post is safe from any goroutine. Dispatch, Subscribe* and Cancel must
// only be called from the loop goroutine (the one running Run, or the UI
// goroutine that owns the sink).
type Loop struct {
	mu      sync.Mutex
	sink    Sink
	queue   chan Event
	stopped bool
	stop    chan struct{}
	once    sync.Once

	nextID     uint64
	tick       *tickSub
	battery    *handlerSub[BatteryHandler]
	connection *handlerSub[ConnectionHandler]
}

type tickSub struct {
	id      uint64
	units   TimeUnits
	handler TickHandler
}

type handlerSub[H any] struct {
	id      uint64
	handler H
}

// NewLoop creates a loop with an internal queue.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan Event, DefaultQueueSize),
		stop:  make(chan struct{}),
	}
}

// SetSink redirects posted events. Pass nil to restore the internal queue.
func (l *Loop) SetSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = s
}

// Post queues ev for dispatch on the loop goroutine. Events posted after
// Stop are dropped.
func (l *Loop) Post(ev Event) {
	l.mu.Lock()
	sink, stopped := l.sink, l.stopped
	l.mu.Unlock()
	if stopped {
		return
	}
	if sink != nil {
		sink(ev)
		return
	}
	select {
	case l.queue <- ev:
	case <-l.stop:
	}
}

// Run dispatches queued events until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return ErrLoopStopped
		case ev := <-l.queue:
			l.Dispatch(ev)
		}
	}
}

// Stop ends Run and drops further posts.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		close(l.stop)
	})
}

// Dispatch delivers ev to the current subscriber, if any.
func (l *Loop) Dispatch(ev Event) {
	switch e := ev.(type) {
	case TickEvent:
		if s := l.tick; s != nil && e.Units&s.units != 0 {
			s.handler(e)
		}
	case BatteryEvent:
		if s := l.battery; s != nil {
			s.handler(e.State)
		}
	case ConnectionEvent:
		if s := l.connection; s != nil {
			s.handler(e.Connected)
		}
	}
}

// SubscribeTick installs h for ticks that include any of units, replacing
// any previous tick handler.
func (l *Loop) SubscribeTick(units TimeUnits, h TickHandler) Subscription {
	l.nextID++
	l.tick = &tickSub{id: l.nextID, units: units, handler: h}
	return Subscription{loop: l, kind: kindTick, id: l.nextID}
}

// SubscribeBattery installs h, replacing any previous battery handler.
func (l *Loop) SubscribeBattery(h BatteryHandler) Subscription {
	l.nextID++
	l.battery = &handlerSub[BatteryHandler]{id: l.nextID, handler: h}
	return Subscription{loop: l, kind: kindBattery, id: l.nextID}
}

// SubscribeConnection installs h, replacing any previous connection handler.
func (l *Loop) SubscribeConnection(h ConnectionHandler) Subscription {
	l.nextID++
	l.connection = &handlerSub[ConnectionHandler]{id: l.nextID, handler: h}
	return Subscription{loop: l, kind: kindConnection, id: l.nextID}
}

// Subscribed reports how many services currently have a handler.
func (l *Loop) Subscribed() int {
	n := 0
	if l.tick != nil {
		n++
	}
	if l.battery != nil {
		n++
	}
	if l.connection != nil {
		n++
	}
	return n
}

// Subscription is the handle returned by the Subscribe methods.
type Subscription struct {
	loop *Loop
	kind eventKind
	id   uint64
}

// Active reports whether the handler installed by this subscription is
// still the current one.
func (s Subscription) Active() bool {
	if s.loop == nil {
		return false
	}
	switch s.kind {
	case kindTick:
		return s.loop.tick != nil && s.loop.tick.id == s.id
	case kindBattery:
		return s.loop.battery != nil && s.loop.battery.id == s.id
	case kindConnection:
		return s.loop.connection != nil && s.loop.connection.id == s.id
	}
	return false
}

// Cancel removes the handler. It does nothing if the handler was already
// cancelled or replaced by a later subscription.
func (s Subscription) Cancel() {
	if !s.Active() {
		return
	}
	switch s.kind {
	case kindTick:
		s.loop.tick = nil
	case kindBattery:
		s.loop.battery = nil
	case kindConnection:
		s.loop.connection = nil
	}
}
