package companion

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

// DefaultScanTimeout is the default timeout for watch discovery
const DefaultScanTimeout = 5 * time.Second

// Watch is a discovered simplr instance.
type Watch struct {
	Instance string
	Hostname string
	IP       string
	Port     int
	Metadata map[string]string
}

// URL returns the websocket URL of the watch's companion endpoint.
func (w *Watch) URL() string {
	path := w.Metadata["path"]
	if path == "" {
		path = Path
	}
	return "ws://" + net.JoinHostPort(w.IP, strconv.Itoa(w.Port)) + path
}

// String implements fmt.Stringer
func (w *Watch) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", w.Instance, w.Hostname, w.IP, w.Port)
}

// Scanner handles mDNS watch discovery
type Scanner struct {
	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan browses for watches until the timeout or ctx ends.
func (s *Scanner) Scan(ctx context.Context) ([]*Watch, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu      sync.Mutex
		watches []*Watch
		done    = make(chan struct{})
	)
	go func() {
		defer close(done)
		for entry := range entries {
			if w := parseServiceEntry(entry); w != nil {
				mu.Lock()
				watches = append(watches, w)
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// The resolver closes entries once the browse context ends.
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	return watches, nil
}

// parseServiceEntry converts a zeroconf service entry to a Watch.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Watch {
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Watch{
		Instance: entry.Instance,
		Hostname: entry.HostName,
		IP:       ip,
		Port:     entry.Port,
		Metadata: metadata,
	}
}
