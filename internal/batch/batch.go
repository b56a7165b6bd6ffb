// Package batch implements the bulk proposal pass that the gateway runs in
// the background.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/strategy"
)

// Threshold is the gross amount a proposal must exceed to be processed.
var Threshold = decimal.NewFromInt(2000)

// Item is one entry of a batch.
type Item struct {
	ID     string
	Amount decimal.Decimal
}

// Result is the net value computed for an Item.
type Result struct {
	ID  string
	Net decimal.Decimal
}

// Job processes a fixed list of items. Latency simulates the time the work
// takes before results are produced.
type Job struct {
	Items   []Item
	Latency time.Duration
	logger  *slog.Logger
}

// NewJob returns a Job over items.
func NewJob(items []Item, latency time.Duration, logger *slog.Logger) *Job {
	return &Job{Items: items, Latency: latency, logger: logger}
}

// Process keeps items above Threshold and applies the starter-tier deduction.
// If ctx is cancelled during the simulated latency it returns no results and
// ctx.Err().
func (j *Job) Process(ctx context.Context) ([]Result, error) {
	if j.Latency > 0 {
		select {
		case <-time.After(j.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var results []Result
	for _, it := range j.Items {
		if it.Amount.LessThanOrEqual(Threshold) {
			continue
		}
		net, err := strategy.Apply(strategy.PlanStarter, it.Amount)
		if err != nil {
			return results, err
		}
		results = append(results, Result{ID: it.ID, Net: net})
		j.logger.Info("batch item processed", "id", it.ID, "net", net.StringFixed(2))
	}
	return results, nil
}

// Run is Process shaped for background.Runner.Launch.
func (j *Job) Run(ctx context.Context) {
	results, err := j.Process(ctx)
	if err != nil {
		j.logger.Error("batch failed", "error", err)
		return
	}
	j.logger.Info("batch processed", "items", len(j.Items), "selected", len(results))
}
