package companion

import (
	"fmt"
	"os"
	"strings"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/simplr/internal/logging"
	"github.com/muurk/simplr/internal/version"
)

const (
	// ServiceType is the mDNS service type advertised by the watch
	ServiceType = "_simplr._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."
)

// Advertisement is a registered mDNS service. Close withdraws it.
type Advertisement struct {
	server *zeroconf.Server
}

// InstanceName returns the mDNS instance name for this machine.
func InstanceName() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "watch"
	}
	name = strings.SplitN(name, ".", 2)[0]
	return "simplr-" + name
}

// TXTRecords returns the metadata published with the service.
func TXTRecords() []string {
	return []string{
		"path=" + Path,
		"version=" + version.Version,
	}
}

// Advertise registers the companion endpoint on port.
func Advertise(port int) (*Advertisement, error) {
	instance := InstanceName()
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, TXTRecords(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising companion endpoint",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Close withdraws the advertisement.
func (a *Advertisement) Close() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}
