package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/greeninvest/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Companies
	mux.HandleFunc("/api/companies/", s.handleCompanyGet)
	mux.HandleFunc("/api/companies", s.routeCompanies)

	// Portfolio
	mux.HandleFunc("/api/portfolio/positions", s.handlePortfolioPosition)
	mux.HandleFunc("/api/portfolio", s.routePortfolio)

	// Analysis and ESG views
	mux.HandleFunc("/api/analysis/run", s.handleAnalysisRun)
	mux.HandleFunc("/api/esg/scores", s.handleESGScores)
	mux.HandleFunc("/api/esg/benchmarks/regenerate", s.handleBenchmarksRegenerate)
	mux.HandleFunc("/api/esg/benchmarks", s.handleBenchmarks)
	mux.HandleFunc("/api/esg/comparisons", s.handleComparisons)

	// Dashboard
	mux.HandleFunc("/api/dashboard/summary", s.handleDashboardSummary)
	mux.HandleFunc("/api/dashboard/charts/portfolio", s.handlePortfolioChart)
	mux.HandleFunc("/api/dashboard/charts/comparison/", s.handleComparisonChart)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       s.app.Config.Environment,
		"storage_address":   s.app.Config.Storage.Address,
		"storage_namespace": s.app.Config.Storage.Namespace,
		"storage_database":  s.app.Config.Storage.Database,
		"raw_path":          s.app.Config.Storage.RawPath,
		"logging_level":     s.app.Config.Logging.Level,
		"gemini_configured": s.app.GeminiClient != nil,
		"uptime":            uptime.String(),
		"started_at":        s.app.StartupTime,
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
