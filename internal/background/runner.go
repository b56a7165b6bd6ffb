// Package background runs detached units of work alongside the main flow.
//
// Launched work is never joined. Callers that want to give it a chance to
// finish apply a fixed Grace delay before exiting; whatever is still running
// after that is abandoned with the process.
package background

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Runner launches detached work. It is safe for concurrent use.
type Runner struct {
	logger  *slog.Logger
	pending atomic.Int64
}

// NewRunner returns a Runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Launch starts work in its own goroutine and returns immediately. The
// context passed to work is never cancelled by the runner. A panic in work is
// recovered and logged.
func (r *Runner) Launch(name string, work func(ctx context.Context)) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Add(-1)
		defer func() {
			if v := recover(); v != nil {
				r.logger.Error("background task panicked", "task", name, "panic", v)
			}
		}()

		start := time.Now()
		r.logger.Info("background task started", "task", name)
		work(context.Background())
		r.logger.Info("background task finished", "task", name, "duration_ms", time.Since(start).Milliseconds())
	}()
}

// Pending reports how many launched units have not returned yet.
func (r *Runner) Pending() int {
	return int(r.pending.Load())
}

// Grace blocks for exactly delay, or until ctx is done, then returns the
// number of units still running. It does not wait for work to finish early.
func (r *Runner) Grace(ctx context.Context, delay time.Duration) int {
	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}

	n := r.Pending()
	if n > 0 {
		r.logger.Warn("grace delay elapsed with background work outstanding", "pending", n, "delay", delay.String())
	}
	return n
}
