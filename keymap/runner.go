package keymap

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultFrameInterval approximates a 60 Hz frame loop.
const DefaultFrameInterval = time.Second / 60

// Runner drives Mapper.Update at a fixed rate for hosts without their
// own frame loop. The injected clock lets tests step frames
// deterministically.
type Runner struct {
	mapper   *Mapper
	clk      clock.Clock
	interval time.Duration
	log      *slog.Logger
}

func NewRunner(m *Mapper, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Runner {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{mapper: m, clk: clk, interval: interval, log: logger}
}

// Run ticks the mapper until the context is cancelled. Update errors
// (autosave failures during capture) are logged and do not stop the
// loop; the mapper has already notified the user-facing contract.
func (r *Runner) Run(ctx context.Context) error {
	ticker := r.clk.Ticker(r.interval)
	defer ticker.Stop()

	last := r.clk.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := r.mapper.Update(dt); err != nil {
				r.log.Error("frame update failed", "error", err)
			}
		}
	}
}
