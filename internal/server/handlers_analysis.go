package server

import (
	"net/http"
)

// handleAnalysisRun handles POST /api/analysis/run. The analysis service
// serializes runs internally; overlapping requests queue rather than
// interleave.
func (s *Server) handleAnalysisRun(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	result, err := s.app.Analysis.RunAnalysis(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleESGScores(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	scores, err := s.app.Storage.ESGStore().ListScores(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list ESG scores: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scores": scores,
		"count":  len(scores),
	})
}

func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	benchmarks, err := s.app.Storage.ESGStore().ListBenchmarks(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list benchmarks: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"benchmarks": benchmarks,
		"count":      len(benchmarks),
	})
}

// handleBenchmarksRegenerate handles POST /api/esg/benchmarks/regenerate,
// replacing the whole benchmark table with fresh draws.
func (s *Server) handleBenchmarksRegenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	benchmarks, err := s.app.Benchmark.GenerateSectorBenchmarks(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to regenerate benchmarks: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"benchmarks": benchmarks,
		"count":      len(benchmarks),
	})
}

func (s *Server) handleComparisons(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	comparisons, err := s.app.Storage.ESGStore().ListComparisons(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list comparisons: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"comparisons": comparisons,
		"count":       len(comparisons),
	})
}
