package server

import (
	"net/http"
	"strings"
)

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.Dashboard.PortfolioSummary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to build summary: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.Dashboard.RenderPortfolioChart(r.Context())
	if err != nil {
		WriteError(w, http.StatusNotFound, "No chart available: "+err.Error())
		return
	}
	WritePNG(w, png)
}

func (s *Server) handleComparisonChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.ToUpper(PathParam(r, "/api/dashboard/charts/comparison/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	png, err := s.app.Dashboard.RenderComparisonChart(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusNotFound, "No comparison chart available: "+err.Error())
		return
	}
	WritePNG(w, png)
}
