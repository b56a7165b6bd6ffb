package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/seantiz/proposalgw/internal/background"
	"github.com/seantiz/proposalgw/internal/batch"
	"github.com/seantiz/proposalgw/internal/model"
	"github.com/seantiz/proposalgw/internal/strategy"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Generate one proposal, with a background batch running alongside",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: "demo_user", Usage: "Credential subject"},
			&cli.StringFlag{Name: "plan", Value: "PRO", Usage: "Plan tier"},
			&cli.StringFlag{Name: "amount", Value: "10000.00", Usage: "Gross amount"},
			&cli.StringFlag{Name: "customer", Usage: "Customer UUID (random when empty)"},
			&cli.DurationFlag{Name: "batch-latency", Value: 2 * time.Second, Usage: "Simulated duration of the background batch"},
		},
		Action: runProposal,
	}
}

func runProposal(c *cli.Context) error {
	gross, err := decimal.NewFromString(c.String("amount"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid --amount: %v", err), 2)
	}
	customerID := uuid.New()
	if s := c.String("customer"); s != "" {
		if customerID, err = uuid.Parse(s); err != nil {
			return cli.Exit(fmt.Sprintf("invalid --customer: %v", err), 2)
		}
	}

	d, err := wire()
	if err != nil {
		return err
	}
	defer d.store.Close()

	ctx := c.Context
	log := d.logger

	runner := background.NewRunner(log)
	job := batch.NewJob([]batch.Item{
		{ID: "001", Amount: decimal.RequireFromString("1500.0")},
		{ID: "002", Amount: decimal.RequireFromString("4500.0")},
		{ID: "003", Amount: decimal.RequireFromString("12000.0")},
	}, c.Duration("batch-latency"), log)
	runner.Launch("batch", job.Run)
	log.Info("batch launched, continuing with proposal")

	subject, plan := c.String("subject"), c.String("plan")
	out, err := d.orch.Propose(ctx, subject, customerID, gross, plan)

	rec := &model.Record{
		ID:          model.NewRecordID(),
		CustomerID:  customerID,
		Subject:     subject,
		Plan:        plan,
		GrossAmount: gross,
		CreatedAt:   time.Now().UTC(),
	}
	switch {
	case err != nil:
		// Fatal for this proposal only; the rest of the run proceeds.
		log.Error("proposal failed", "customer_id", customerID.String(), "error", err)
		rec = nil
	case out.Deferred():
		log.Warn("contingency: proposal queued for later processing", "customer_id", customerID.String())
		rec.Status = model.StatusDeferred
	default:
		log.Info("proposal ready",
			"proposal_id", out.Response.ProposalID.String(),
			"net_amount", out.Response.NetAmount.StringFixed(2),
			"applied_rate", out.Response.AppliedRate.String(),
			"status", out.Response.Status,
		)
		rec.Status = model.StatusCompleted
		rec.ProposalID = &out.Response.ProposalID
		rec.NetAmount = &out.Response.NetAmount
	}

	runner.Grace(ctx, d.cfg.GraceDelay)

	if rec != nil {
		if err := d.store.Save(ctx, rec); err != nil {
			log.Error("save record", "error", err)
		} else {
			log.Info("record saved", "record_id", rec.ID, "status", rec.Status)
		}
	}

	base := decimal.NewFromInt(1000)
	for _, p := range strategy.Plans() {
		net, err := strategy.Apply(p, base)
		if err != nil {
			return err
		}
		log.Info("plan preview", "plan", string(p), "amount", base.StringFixed(2), "net", net.StringFixed(2))
	}

	return nil
}
