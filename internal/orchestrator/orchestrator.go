package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/client"
	"github.com/seantiz/proposalgw/internal/model"
	"github.com/seantiz/proposalgw/internal/token"
)

// CalculateEndpoint is the engine path that computes proposals.
const CalculateEndpoint = "/api/calculate"

// State is the terminal state of one GenerateProposal call.
type State string

// Terminal states.
const (
	StateDone     State = "done"
	StateDeferred State = "deferred"
)

// Outcome is the result of GenerateProposal. Response is set only when State
// is StateDone.
type Outcome struct {
	State    State
	Response *model.ProposalResponse
}

// Deferred reports whether the request was deferred for later processing.
func (o Outcome) Deferred() bool {
	return o.State == StateDeferred
}

// Prober reports engine liveness.
type Prober interface {
	Check(ctx context.Context, baseURL string) bool
}

// Orchestrator composes credential issuance, health probing, and dispatch.
// It keeps no per-call state and is safe for concurrent use.
type Orchestrator struct {
	issuer *token.Issuer
	probe  Prober
	client *client.Client
	logger *slog.Logger
}

// New returns an Orchestrator.
func New(issuer *token.Issuer, probe Prober, c *client.Client, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		issuer: issuer,
		probe:  probe,
		client: c,
		logger: logger,
	}
}

// GenerateProposal probes the engine and, if healthy, asks it to calculate a
// proposal. An unhealthy probe yields a deferred Outcome and a nil error.
// Errors from the calculation call are returned wrapped; callers can use
// errors.As with *client.StatusError.
func (o *Orchestrator) GenerateProposal(ctx context.Context, customerID uuid.UUID, gross decimal.Decimal, plan string, cred token.Credential) (Outcome, error) {
	req := model.ProposalRequest{
		CustomerID:  customerID,
		GrossAmount: gross,
		Plan:        plan,
	}
	log := o.logger.With("customer_id", customerID.String(), "plan", plan)

	log.Debug("proposal state", "state", "probing")
	if !o.probe.Check(ctx, o.client.BaseURL()) {
		log.Info("engine unavailable, proposal deferred for later processing")
		proposalsTotal.WithLabelValues(string(StateDeferred)).Inc()
		return Outcome{State: StateDeferred}, nil
	}

	log.Debug("proposal state", "state", "dispatching")
	start := time.Now()
	resp, err := client.Post[model.ProposalRequest, model.ProposalResponse](ctx, o.client, CalculateEndpoint, req, cred)
	dispatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		proposalsTotal.WithLabelValues("failed").Inc()
		return Outcome{}, fmt.Errorf("generate proposal: %w", err)
	}

	log.Info("proposal calculated",
		"proposal_id", resp.ProposalID.String(),
		"net_amount", resp.NetAmount.StringFixed(2),
	)
	proposalsTotal.WithLabelValues(string(StateDone)).Inc()
	return Outcome{State: StateDone, Response: &resp}, nil
}

// Propose issues a credential for subject and then calls GenerateProposal.
func (o *Orchestrator) Propose(ctx context.Context, subject string, customerID uuid.UUID, gross decimal.Decimal, plan string) (Outcome, error) {
	cred, err := o.issuer.Issue(subject, plan)
	if err != nil {
		return Outcome{}, fmt.Errorf("issue credential: %w", err)
	}
	return o.GenerateProposal(ctx, customerID, gross, plan, cred)
}

// EngineURL returns the engine base address.
func (o *Orchestrator) EngineURL() string {
	return o.client.BaseURL()
}

// EngineHealthy runs a fresh probe against the engine.
func (o *Orchestrator) EngineHealthy(ctx context.Context) bool {
	return o.probe.Check(ctx, o.client.BaseURL())
}
