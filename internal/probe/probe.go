package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"weather-gateway/internal/logger"
	"weather-gateway/internal/weather"
)

// Status is the last observed upstream reachability, reported by /status.
type Status struct {
	Checked     bool      `json:"checked"`
	Reachable   bool      `json:"reachable"`
	LastChecked time.Time `json:"last_checked,omitempty"`
}

// Prober periodically issues a minimal current-conditions lookup against the
// upstream provider and records whether it succeeded.
type Prober struct {
	scheduler *gocron.Scheduler
	provider  weather.Provider
	interval  time.Duration

	mu     sync.RWMutex
	status Status
}

// New creates a Prober. A non-positive interval falls back to 15 minutes.
func New(provider weather.Provider, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Prober{
		scheduler: gocron.NewScheduler(time.UTC),
		provider:  provider,
		interval:  interval,
	}
}

// Start schedules the periodic probe and runs it once immediately.
func (p *Prober) Start() error {
	minutes := int(p.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := p.scheduler.Every(minutes).Minutes().StartImmediately().Do(p.run)
	if err != nil {
		return fmt.Errorf("failed to schedule upstream probe: %w", err)
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future probes.
func (p *Prober) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}

// Status returns the last probe outcome. Before the first run, Checked is false.
func (p *Prober) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Prober) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The provider resolves "auto:ip" from the caller's address, which makes
	// this the cheapest lookup that exercises the full request path.
	_, err := p.provider.Current(ctx, "auto:ip")
	if err != nil {
		logger.WithFields(logger.Fields{"op": "probe"}).Warnf("upstream probe failed: %v", err)
	}

	p.mu.Lock()
	p.status = Status{
		Checked:     true,
		Reachable:   err == nil,
		LastChecked: time.Now().UTC(),
	}
	p.mu.Unlock()
}
