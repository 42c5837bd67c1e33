package companion

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"

	"github.com/muurk/simplr/internal/host"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Message
		wantErr error
	}{
		{name: "hello", input: `{"type":"hello","name":"pixel"}`, want: Message{Type: TypeHello, Name: "pixel"}},
		{name: "steps", input: `{"type":"steps","count":120}`, want: Message{Type: TypeSteps, Count: 120}},
		{name: "total", input: `{"type":"steps_total","count":0}`, want: Message{Type: TypeStepsTotal}},
		{name: "bye", input: `{"type":"bye"}`, want: Message{Type: TypeBye}},
		{name: "negative", input: `{"type":"steps","count":-1}`, wantErr: ErrInvalidCount},
		{name: "unknown", input: `{"type":"reboot"}`, wantErr: ErrUnknownMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessage([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseMessage() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMessage() error = %v", err)
			}
			if got.Type != tt.want.Type || got.Name != tt.want.Name || got.Count != tt.want.Count {
				t.Errorf("ParseMessage() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := ParseMessage([]byte("not json")); err == nil {
		t.Error("ParseMessage() should reject malformed JSON")
	}
}

func TestParseMessageWithTimestamp(t *testing.T) {
	m, err := ParseMessage([]byte(`{"type":"steps","count":5,"at":"2024-03-03T09:05:00Z"}`))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if m.At == nil || !m.At.Equal(time.Date(2024, 3, 3, 9, 5, 0, 0, time.UTC)) {
		t.Errorf("At = %v", m.At)
	}
}

type linkFixture struct {
	clock  time.Time
	dev    *host.Device
	events chan bool
	srv    *Server
	url    string
}

func newLinkFixture(t *testing.T) *linkFixture {
	t.Helper()
	fx := &linkFixture{
		clock:  time.Date(2024, 3, 3, 9, 5, 0, 0, time.UTC),
		events: make(chan bool, 8),
	}
	fx.dev = host.NewDevice(host.WithClock(func() time.Time { return fx.clock }))
	fx.dev.Loop().SetSink(func(ev host.Event) {
		if c, ok := ev.(host.ConnectionEvent); ok {
			fx.events <- c.Connected
		}
	})
	fx.srv = NewServer(fx.dev)
	ts := httptest.NewServer(fx.srv.Handler())
	t.Cleanup(ts.Close)
	fx.url = "ws" + strings.TrimPrefix(ts.URL, "http") + Path
	return fx
}

func (fx *linkFixture) waitConnected(t *testing.T, want bool) {
	t.Helper()
	select {
	case got := <-fx.events:
		if got != want {
			t.Fatalf("connection event = %v, want %v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no connection event (want %v)", want)
	}
}

func TestSessionDrivesConnectionAndSteps(t *testing.T) {
	fx := newLinkFixture(t)
	ctx := context.Background()

	c, err := Dial(ctx, fx.url, "test-phone")
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	fx.waitConnected(t, true)
	if !fx.dev.Connection().Peek() {
		t.Error("device should report connected")
	}

	total, err := c.SendSteps(120)
	if err != nil {
		t.Fatalf("SendSteps() error = %v", err)
	}
	if total != 120 {
		t.Errorf("SendSteps() total = %d, want 120", total)
	}

	// Steps from yesterday do not count toward today.
	if total, err = c.SendStepsAt(50, fx.clock.AddDate(0, 0, -1)); err != nil || total != 120 {
		t.Errorf("SendStepsAt(yesterday) = %d, %v; want 120", total, err)
	}

	if total, err = c.SendTotal(5400); err != nil || total != 5400 {
		t.Errorf("SendTotal() = %d, %v; want 5400", total, err)
	}
	if got := fx.dev.Health().SumToday(host.HealthMetricStepCount); got != 5400 {
		t.Errorf("SumToday() = %d, want 5400", got)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	fx.waitConnected(t, false)
}

func TestTwoSessionsStayConnectedUntilLastCloses(t *testing.T) {
	fx := newLinkFixture(t)
	ctx := context.Background()

	a, err := Dial(ctx, fx.url, "a")
	if err != nil {
		t.Fatalf("Dial(a) error = %v", err)
	}
	fx.waitConnected(t, true)
	b, err := Dial(ctx, fx.url, "b")
	if err != nil {
		t.Fatalf("Dial(b) error = %v", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("a.Close() error = %v", err)
	}
	select {
	case got := <-fx.events:
		t.Fatalf("unexpected connection event %v while b is open", got)
	case <-time.After(100 * time.Millisecond):
	}

	if err := b.Close(); err != nil {
		t.Fatalf("b.Close() error = %v", err)
	}
	fx.waitConnected(t, false)
}

func TestServerRejectsBadMessages(t *testing.T) {
	fx := newLinkFixture(t)
	if reply, bye := fx.srv.handle("test", []byte(`{"type":"steps","count":-3}`)); reply.Type != TypeError || bye {
		t.Errorf("handle(negative) = %+v, %v", reply, bye)
	}
	if reply, _ := fx.srv.handle("test", []byte(`{"type":"dance"}`)); !strings.Contains(reply.Error, "dance") {
		t.Errorf("error reply should name the type, got %q", reply.Error)
	}
	if _, bye := fx.srv.handle("test", []byte(`{"type":"bye"}`)); !bye {
		t.Error("bye should end the session")
	}
}

// stallDevice blocks in SetConnected(false) until gate is closed.
type stallDevice struct {
	mu        sync.Mutex
	connected bool
	store     *host.HealthStore
	entered   chan struct{}
	gate      chan struct{}
}

func (d *stallDevice) Now() time.Time           { return time.Now() }
func (d *stallDevice) Store() *host.HealthStore { return d.store }

func (d *stallDevice) SetConnected(connected bool) {
	if !connected {
		close(d.entered)
		<-d.gate
	}
	d.mu.Lock()
	d.connected = connected
	d.mu.Unlock()
}

func (d *stallDevice) isConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

func TestOpenDuringSlowCloseStaysConnected(t *testing.T) {
	dev := &stallDevice{
		store:   host.NewHealthStore(time.Now),
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	srv := NewServer(dev)
	a, b := &websocket.Conn{}, &websocket.Conn{}

	if !srv.track(a, "a") {
		t.Fatal("track(a) refused")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		srv.untrack(a, "a")
	}()
	<-dev.entered

	go func() {
		defer wg.Done()
		srv.track(b, "b")
	}()
	time.Sleep(50 * time.Millisecond)
	close(dev.gate)
	wg.Wait()

	if srv.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", srv.Sessions())
	}
	if !dev.isConnected() {
		t.Error("device should stay connected while b is open")
	}
}

func TestShutdownRefusesNewSessions(t *testing.T) {
	fx := newLinkFixture(t)
	if err := fx.srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := Dial(context.Background(), fx.url, "late"); err == nil {
		t.Fatal("Dial() after Shutdown should fail")
	}
	if fx.srv.track(&websocket.Conn{}, "late") {
		t.Error("track() after Shutdown should refuse")
	}
	if fx.srv.Sessions() != 0 {
		t.Errorf("Sessions() = %d after shutdown", fx.srv.Sessions())
	}
}

func TestServeAndShutdown(t *testing.T) {
	dev := host.NewDevice()
	dev.Loop().SetSink(func(host.Event) {})
	srv := NewServer(dev)
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("Serve() before Listen should fail")
	}
	if err := srv.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx) }()

	addr := srv.Addr().(*net.TCPAddr)
	c, err := Dial(context.Background(), "ws://"+addr.String()+Path, "x")
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer func() { _ = c.conn.Close() }()

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if srv.Sessions() != 0 {
		t.Errorf("Sessions() = %d after shutdown", srv.Sessions())
	}
}

func TestParseServiceEntry(t *testing.T) {
	entry := zeroconf.NewServiceEntry("simplr-desk", ServiceType, ServiceDomain)
	entry.HostName = "desk.local."
	entry.Port = 8765
	entry.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.20")}
	entry.Text = []string{"path=/companion", "version=dev", "flag"}

	w := parseServiceEntry(entry)
	if w == nil {
		t.Fatal("parseServiceEntry() returned nil")
	}
	if w.URL() != "ws://192.168.1.20:8765/companion" {
		t.Errorf("URL() = %v", w.URL())
	}
	if _, ok := w.Metadata["flag"]; !ok {
		t.Error("key-only TXT record should be kept")
	}

	entry.AddrIPv4 = nil
	if parseServiceEntry(entry) != nil {
		t.Error("entry without addresses should be ignored")
	}
}

func TestTXTRecords(t *testing.T) {
	records := TXTRecords()
	if len(records) == 0 || records[0] != "path="+Path {
		t.Errorf("TXTRecords() = %v", records)
	}
	if !strings.HasPrefix(InstanceName(), "simplr-") {
		t.Errorf("InstanceName() = %v", InstanceName())
	}
}
