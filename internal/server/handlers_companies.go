package server

import (
	"net/http"
	"strings"
)

// routeCompanies dispatches /api/companies between list (GET) and collect
// (POST).
func (s *Server) routeCompanies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleCompanyList(w, r)
	case http.MethodPost:
		s.handleCompanyCollect(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleCompanyList(w http.ResponseWriter, r *http.Request) {
	companies, err := s.app.Storage.CompanyStore().ListCompanies(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list companies: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"companies": companies,
		"count":     len(companies),
	})
}

// handleCompanyCollect runs the full ingestion workflow for one ticker: all
// collectors first (profile and prices, then news, then reports), then a
// single integration pass over the raw files. News or report failures
// degrade to a partial collection rather than failing the request.
func (s *Server) handleCompanyCollect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string `json:"ticker"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ctx := r.Context()

	if _, err := s.app.Collector.CollectCompanyData(ctx, ticker); err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to collect company data: "+err.Error())
		return
	}
	if _, err := s.app.Collector.CollectNewsData(ctx, ticker); err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("News collection failed")
	}
	if _, err := s.app.Collector.ProcessReports(ctx, ticker); err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Report processing failed")
	}

	// Single integration pass over everything the collectors wrote.
	if err := s.app.Integrator.IntegrateCompanyData(ctx, ticker); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to integrate company data: "+err.Error())
		return
	}

	company, err := s.app.Storage.CompanyStore().GetCompany(ctx, ticker)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Company missing after integration: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, company)
}

// handleCompanyGet handles GET /api/companies/{ticker}, returning the
// company row plus its ESG score when one exists.
func (s *Server) handleCompanyGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.ToUpper(PathParam(r, "/api/companies/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	company, err := s.app.Storage.CompanyStore().GetCompany(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Company not found: "+ticker)
		return
	}

	resp := map[string]interface{}{"company": company}
	if score, err := s.app.Storage.ESGStore().GetScore(r.Context(), ticker); err == nil {
		resp["esg_score"] = score
	}
	WriteJSON(w, http.StatusOK, resp)
}
