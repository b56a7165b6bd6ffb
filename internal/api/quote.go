package api

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/strategy"
)

type quoteResponse struct {
	Plan   strategy.Plan   `json:"plan"`
	Known  bool            `json:"known"`
	Amount decimal.Decimal `json:"amount"`
	Net    decimal.Decimal `json:"net"`
}

// handleQuote previews the local plan discount without calling the engine.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "amount must be a decimal number")
		return
	}

	plan, known := strategy.ParsePlan(r.URL.Query().Get("plan"))
	net, err := strategy.Apply(plan, amount)
	if errors.Is(err, strategy.ErrNoPlan) {
		s.writeError(w, http.StatusBadRequest, "plan is required")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to compute quote")
		return
	}

	s.writeJSON(w, http.StatusOK, quoteResponse{Plan: plan, Known: known, Amount: amount, Net: net})
}
