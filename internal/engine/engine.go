package engine

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/model"
	"github.com/seantiz/proposalgw/internal/token"
)

const (
	maxBodySize = 1 << 20 // 1 MB

	// StatusProcessed is the status the engine reports for calculated proposals.
	StatusProcessed = "PROCESSED"
)

// feeRates maps plans to the fee rate charged on the gross amount.
var feeRates = map[string]decimal.Decimal{
	"STARTER": decimal.RequireFromString("0.06"),
	"PRO":     decimal.RequireFromString("0.15"),
}

// FeeRate returns the fee rate for plan. Unknown plans pay no fee.
func FeeRate(plan string) decimal.Decimal {
	if r, ok := feeRates[strings.ToUpper(plan)]; ok {
		return r
	}
	return decimal.Zero
}

// Calculate computes the engine's response for req.
func Calculate(req model.ProposalRequest) model.ProposalResponse {
	rate := FeeRate(req.Plan)
	fee := req.GrossAmount.Mul(rate).Round(2)
	return model.ProposalResponse{
		ProposalID:  uuid.New(),
		NetAmount:   req.GrossAmount.Sub(fee),
		AppliedRate: rate,
		Status:      StatusProcessed,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Engine serves the calculation API.
type Engine struct {
	router  *chi.Mux
	latency time.Duration
	logger  *slog.Logger
}

// New returns an Engine. latency delays every calculation to simulate
// expensive work.
func New(latency time.Duration, logger *slog.Logger) *Engine {
	e := &Engine{
		router:  chi.NewRouter(),
		latency: latency,
		logger:  logger,
	}

	e.router.Use(middleware.RequestID)
	e.router.Use(middleware.Recoverer)

	e.router.Get("/health", e.handleHealth)
	e.router.Post("/api/calculate", e.handleCalculate)

	return e
}

// Handler returns the engine's HTTP handler.
func (e *Engine) Handler() http.Handler {
	return e.router
}

func (e *Engine) handleHealth(w http.ResponseWriter, r *http.Request) {
	e.writeJSON(w, http.StatusOK, healthResponse{Status: "UP"})
}

func (e *Engine) handleCalculate(w http.ResponseWriter, r *http.Request) {
	cred, ok := token.FromBearer(r.Header.Get("Authorization"))
	if !ok {
		e.logger.Warn("access denied: missing or malformed authorization header")
		e.writeError(w, http.StatusUnauthorized, "bearer authorization header is required")
		return
	}

	var req model.ProposalRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		e.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Plan == "" {
		e.writeError(w, http.StatusBadRequest, "plan is required")
		return
	}

	claims, err := token.Inspect(cred)
	if err != nil || claims.Plan != strings.ToUpper(req.Plan) {
		e.logger.Warn("access denied: credential does not grant plan", "plan", req.Plan, "error", err)
		e.writeError(w, http.StatusForbidden, "access denied: invalid credential or insufficient plan")
		return
	}

	if req.GrossAmount.IsNegative() {
		e.writeError(w, http.StatusBadRequest, "gross amount must not be negative")
		return
	}

	if e.latency > 0 {
		select {
		case <-time.After(e.latency):
		case <-r.Context().Done():
			return
		}
	}

	resp := Calculate(req)
	e.logger.Info("proposal calculated",
		"proposal_id", resp.ProposalID.String(),
		"customer_id", req.CustomerID.String(),
		"net_amount", resp.NetAmount.StringFixed(2),
	)
	e.writeJSON(w, http.StatusOK, resp)
}

func (e *Engine) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		e.logger.Error("encode response", "error", err)
	}
}

func (e *Engine) writeError(w http.ResponseWriter, status int, message string) {
	e.writeJSON(w, status, map[string]string{"error": message})
}
