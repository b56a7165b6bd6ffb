package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/client"
	"github.com/seantiz/proposalgw/internal/model"
	"github.com/seantiz/proposalgw/internal/orchestrator"
	"github.com/seantiz/proposalgw/internal/store"
)

const maxBodySize = 1 << 20 // 1 MB

// createProposalRequest is the JSON body for POST /v1/proposals.
type createProposalRequest struct {
	Subject     string           `json:"subject"`
	CustomerID  *uuid.UUID       `json:"customer_id"`
	GrossAmount *decimal.Decimal `json:"gross_amount"`
	Plan        string           `json:"plan"`
}

type proposalResponse struct {
	Outcome  orchestrator.State      `json:"outcome"`
	Proposal *model.ProposalResponse `json:"proposal,omitempty"`
	Record   *model.Record           `json:"record"`
}

type listProposalsResponse struct {
	Records []*model.Record `json:"records"`
	Total   int             `json:"total"`
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Subject == "" {
		s.writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	if req.Plan == "" {
		s.writeError(w, http.StatusBadRequest, "plan is required")
		return
	}
	if req.GrossAmount == nil || !req.GrossAmount.IsPositive() {
		s.writeError(w, http.StatusBadRequest, "gross_amount must be positive")
		return
	}

	customerID := uuid.New()
	if req.CustomerID != nil {
		customerID = *req.CustomerID
	}

	out, err := s.orch.Propose(r.Context(), req.Subject, customerID, *req.GrossAmount, req.Plan)
	if err != nil {
		s.logger.Error("generate proposal", "customer_id", customerID.String(), "error", err)
		var se *client.StatusError
		if errors.As(err, &se) {
			s.writeError(w, http.StatusBadGateway, se.Error())
			return
		}
		s.writeError(w, http.StatusBadGateway, "calculation engine request failed")
		return
	}

	rec := &model.Record{
		ID:          model.NewRecordID(),
		CustomerID:  customerID,
		Subject:     req.Subject,
		Plan:        req.Plan,
		GrossAmount: *req.GrossAmount,
		Status:      model.StatusDeferred,
		CreatedAt:   time.Now().UTC(),
	}
	if !out.Deferred() {
		rec.Status = model.StatusCompleted
		rec.ProposalID = &out.Response.ProposalID
		rec.NetAmount = &out.Response.NetAmount
	}

	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.Error("save record", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	status := http.StatusOK
	if out.Deferred() {
		status = http.StatusAccepted
	}
	s.writeJSON(w, status, proposalResponse{
		Outcome:  out.State,
		Proposal: out.Response,
		Record:   rec,
	})
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.Error("list records", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	if records == nil {
		records = []*model.Record{}
	}

	s.writeJSON(w, http.StatusOK, listProposalsResponse{
		Records: records,
		Total:   len(records),
	})
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.logger.Error("get record", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get record")
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
