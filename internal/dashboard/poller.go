package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventflow/internal/domain"
)

// DefaultPollInterval matches the browser dashboard's refresh rate.
const DefaultPollInterval = 30 * time.Second

// State is what the screen shows. Snapshot survives a failed poll; Err is the latest failure.
type State struct {
	Snapshot  *domain.Snapshot
	Stage     domain.Stage
	Err       error
	UpdatedAt time.Time
}

// Poller refreshes State from a SummaryFetcher on a fixed interval.
type Poller struct {
	fetcher  SummaryFetcher
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State
}

func NewPoller(fetcher SummaryFetcher, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{fetcher: fetcher, interval: interval, logger: logger, now: time.Now}
}

// State returns a copy of the current state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Poll fetches once and applies the result. The last poll to finish wins.
func (p *Poller) Poll(ctx context.Context) State {
	snap, err := p.fetcher.Summary(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.WarnContext(ctx, "summary poll failed", "err", err)
		p.state.Err = err
		return p.state
	}
	p.state = State{
		Snapshot:  snap,
		Stage:     domain.ResolveStage(snap),
		UpdatedAt: p.now(),
	}
	return p.state
}

// Run polls immediately and then every interval, calling onUpdate after each poll,
// until ctx is done.
func (p *Poller) Run(ctx context.Context, onUpdate func(State)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		onUpdate(p.Poll(ctx))
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
