package power

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/logging"
)

// DefaultPollInterval is how often the battery is re-read.
const DefaultPollInterval = 30 * time.Second

// Sink receives readings. host.Device satisfies it via SetBattery.
type Sink interface {
	SetBattery(s host.ChargeState)
}

// Poller periodically reads a Source and forwards readings to a Sink. The
// sink decides whether a reading is a change.
type Poller struct {
	Source   Source
	Sink     Sink
	Interval time.Duration
}

// Run reads once immediately, then every Interval until ctx is done. Read
// errors are logged and the previous reading is kept.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	p.poll()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	state, err := p.Source.Read()
	if err != nil {
		logging.Warn("Battery read failed", zap.Error(err))
		return
	}
	p.Sink.SetBattery(state)
}
