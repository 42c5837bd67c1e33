package power

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muurk/simplr/internal/host"
)

// DefaultSysfsRoot is where Linux publishes power supplies.
const DefaultSysfsRoot = "/sys/class/power_supply"

// ErrNoBattery is returned when no battery supply exists.
var ErrNoBattery = errors.New("no battery found")

// Source yields battery readings.
type Source interface {
	Read() (host.ChargeState, error)
}

// Static always reports the same reading.
type Static struct {
	State host.ChargeState
}

// Read implements Source
func (s Static) Read() (host.ChargeState, error) {
	return s.State, nil
}

// Sysfs reads the first battery under Root.
type Sysfs struct {
	Root string
}

// NewSysfs creates a source rooted at DefaultSysfsRoot.
func NewSysfs() *Sysfs {
	return &Sysfs{Root: DefaultSysfsRoot}
}

// Read implements Source
func (s *Sysfs) Read() (host.ChargeState, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return host.ChargeState{}, ErrNoBattery
		}
		return host.ChargeState{}, fmt.Errorf("failed to list power supplies: %w", err)
	}

	var battery string
	mainsOnline := false
	for _, e := range entries {
		dir := filepath.Join(s.Root, e.Name())
		switch readAttr(dir, "type") {
		case "Battery":
			if battery == "" {
				battery = dir
			}
		case "Mains", "USB":
			if readAttr(dir, "online") == "1" {
				mainsOnline = true
			}
		}
	}
	if battery == "" {
		return host.ChargeState{}, ErrNoBattery
	}

	capacity, err := strconv.Atoi(readAttr(battery, "capacity"))
	if err != nil {
		return host.ChargeState{}, fmt.Errorf("invalid capacity in %s: %w", battery, err)
	}

	return parseState(capacity, readAttr(battery, "status"), mainsOnline), nil
}

func parseState(capacity int, status string, mainsOnline bool) host.ChargeState {
	charging := status == "Charging"
	return host.ChargeState{
		ChargePercent: capacity,
		IsCharging:    charging,
		IsPlugged:     charging || status == "Full" || mainsOnline,
	}
}

func readAttr(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
