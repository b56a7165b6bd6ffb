package api

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

type engineHealthResponse struct {
	Engine  string `json:"engine"`
	Healthy bool   `json:"healthy"`
}

// handleHealthz reports gateway liveness. It does not depend on the engine:
// an unavailable engine degrades proposals to deferred, it does not take the
// gateway down.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleEngineHealth runs a fresh probe against the engine.
func (s *Server) handleEngineHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, engineHealthResponse{
		Engine:  s.orch.EngineURL(),
		Healthy: s.orch.EngineHealthy(r.Context()),
	})
}
