package server

import (
	"net/http"

	"github.com/bobmcallan/greeninvest/internal/models"
)

// routePortfolio dispatches /api/portfolio between read (GET) and wholesale
// replace (PUT).
func (s *Server) routePortfolio(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioGet(w, r)
	case http.MethodPut:
		s.handlePortfolioReplace(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request) {
	positions, err := s.app.Storage.PortfolioStore().GetPortfolio(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load portfolio: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

func (s *Server) handlePortfolioReplace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Positions []models.PortfolioPosition `json:"positions"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := s.app.Integrator.ReplacePortfolio(r.Context(), req.Positions); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid portfolio: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": req.Positions,
		"count":     len(req.Positions),
	})
}

// handlePortfolioPosition handles POST /api/portfolio/positions, merging one
// position by ticker (update-or-append) before the wholesale replace.
func (s *Server) handlePortfolioPosition(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var pos models.PortfolioPosition
	if !DecodeJSON(w, r, &pos) {
		return
	}

	if err := s.app.Integrator.SetPosition(r.Context(), pos); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid position: "+err.Error())
		return
	}

	positions, err := s.app.Storage.PortfolioStore().GetPortfolio(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load portfolio: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}
