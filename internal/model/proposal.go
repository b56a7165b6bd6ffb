package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// The engine reads amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record status constants.
const (
	StatusCompleted = "completed"
	StatusDeferred  = "deferred"
)

// ProposalRequest is the body sent to the engine's calculate endpoint.
type ProposalRequest struct {
	CustomerID  uuid.UUID       `json:"customerId"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	Plan        string          `json:"plan"`
}

// ProposalResponse is produced by the engine. The gateway reads NetAmount and
// requires ProposalID and Status; the rest is passed through unchanged.
type ProposalResponse struct {
	ProposalID  uuid.UUID       `json:"proposalId"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	AppliedRate decimal.Decimal `json:"appliedRate"`
	Status      string          `json:"status"`
}

// Validate reports whether the engine filled in the fields the gateway
// depends on.
func (r ProposalResponse) Validate() error {
	if r.ProposalID == uuid.Nil {
		return errors.New("proposal response: missing proposalId")
	}
	if r.Status == "" {
		return errors.New("proposal response: missing status")
	}
	return nil
}

// Record is the gateway's bookkeeping entry for one proposal attempt.
// Deferred records carry no ProposalID or NetAmount; they mark work that an
// external mechanism should resubmit.
type Record struct {
	ID          string           `json:"id"`
	ProposalID  *uuid.UUID       `json:"proposal_id,omitempty"`
	CustomerID  uuid.UUID        `json:"customer_id"`
	Subject     string           `json:"subject"`
	Plan        string           `json:"plan"`
	GrossAmount decimal.Decimal  `json:"gross_amount"`
	NetAmount   *decimal.Decimal `json:"net_amount,omitempty"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}
