package companion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// IdleTimeout is how long a session may stay silent before the watch
	// drops it
	IdleTimeout = pongWait

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Path is the HTTP path of the companion endpoint
	Path = "/companion"
)

// Device is the part of the emulated watch the link drives.
type Device interface {
	Now() time.Time
	SetConnected(connected bool)
	Store() *host.HealthStore
}

// Server accepts companion sessions.
type Server struct {
	dev      Device
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*websocket.Conn]string
	closing  bool
	wg       sync.WaitGroup
	http     *http.Server
	listener net.Listener
}

// NewServer creates a server feeding dev.
func NewServer(dev Device) *Server {
	return &Server{
		dev: dev,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Companions are local tools, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[*websocket.Conn]string),
	}
}

// Handler returns the HTTP handler serving Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveCompanion)
	return mux
}

// Listen binds addr. Use Addr to learn the chosen port when addr ends in :0.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts sessions until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("companion server: Listen not called")
	}
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: writeWait}

	errc := make(chan error, 1)
	go func() { errc <- s.http.Serve(s.listener) }()

	logging.Info("Companion server listening", zap.String("addr", s.listener.Addr().String()))

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting sessions and closes the open ones.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}

	s.mu.Lock()
	s.closing = true
	for conn := range s.sessions {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) serveCompanion(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		http.Error(w, "watch shutting down", http.StatusServiceUnavailable)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Companion upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := conn.RemoteAddr().String()
	if !s.track(conn, remoteAddr) {
		_ = conn.Close()
		return
	}
	defer func() {
		_ = conn.Close()
		s.untrack(conn, remoteAddr)
	}()

	s.session(conn, remoteAddr)
}

// track registers a session and reports the link as up. The device is
// updated under s.mu so connection changes land in session-count order.
// It returns false once Shutdown has started.
func (s *Server) track(conn *websocket.Conn, remoteAddr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions[conn] = remoteAddr
	logging.LogCompanion(remoteAddr, "session_opened", zap.Int("sessions", len(s.sessions)))
	s.dev.SetConnected(true)
	return true
}

// untrack removes a session and reports the link as down when it was the
// last one.
func (s *Server) untrack(conn *websocket.Conn, remoteAddr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[conn]; !ok {
		return
	}
	delete(s.sessions, conn)
	n := len(s.sessions)
	logging.LogCompanion(remoteAddr, "session_closed", zap.Int("sessions", n))
	if n == 0 {
		s.dev.SetConnected(false)
	}
}

// session runs the read loop with a ping writer alongside it.
func (s *Server) session(conn *websocket.Conn, remoteAddr string) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	var writeMu sync.Mutex
	write := func(m Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(m)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				writeMu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("Companion read failed",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		// Any traffic proves the peer is alive.
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if kind != websocket.TextMessage {
			continue
		}
		logging.LogCompanionMessage(remoteAddr, "received", data)

		reply, bye := s.handle(remoteAddr, data)
		if err := write(reply); err != nil {
			return
		}
		if bye {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handle applies one message and returns the reply.
func (s *Server) handle(remoteAddr string, data []byte) (Message, bool) {
	m, err := ParseMessage(data)
	if err != nil {
		logging.Warn("Invalid companion message",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return errorMessage(err), false
	}

	store := s.dev.Store()
	switch m.Type {
	case TypeHello:
		logging.LogCompanion(remoteAddr, "hello", zap.String("name", m.Name))
	case TypeSteps:
		at := s.dev.Now()
		if m.At != nil {
			at = *m.At
		}
		store.Add(at, m.Count)
	case TypeStepsTotal:
		store.SetTotal(s.dev.Now(), m.Count)
	case TypeBye:
		return ackMessage(store.SumToday(host.HealthMetricStepCount)), true
	}
	return ackMessage(store.SumToday(host.HealthMetricStepCount)), false
}
