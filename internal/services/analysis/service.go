// Package analysis orchestrates the scoring and benchmarking pipeline.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// Service implements interfaces.AnalysisService. Runs are serialized: the
// store has no cross-table transactions, so overlapping runs would interleave
// table replaces.
type Service struct {
	storage   interfaces.StorageManager
	scorer    interfaces.ScorerService
	benchmark interfaces.BenchmarkService
	logger    *common.Logger

	mu sync.Mutex
}

// NewService creates a new analysis service.
func NewService(storage interfaces.StorageManager, scorer interfaces.ScorerService, benchmark interfaces.BenchmarkService, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		scorer:    scorer,
		benchmark: benchmark,
		logger:    logger,
	}
}

// RunAnalysis scores every portfolio ticker, ensures sector benchmarks
// exist, and recomputes all comparisons.
func (s *Service) RunAnalysis(ctx context.Context) (*interfaces.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info().Msg("Starting portfolio analysis")

	positions, err := s.storage.PortfolioStore().GetPortfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	tickers := make([]string, 0, len(positions))
	for _, p := range positions {
		tickers = append(tickers, p.Ticker)
	}

	scores, err := s.scorer.ScorePortfolio(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to score portfolio: %w", err)
	}

	benchmarks, err := s.ensureBenchmarks(ctx)
	if err != nil {
		return nil, err
	}

	comparisons, err := s.benchmark.GenerateComparisons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate comparisons: %w", err)
	}

	s.logger.Info().
		Int("tickers", len(tickers)).
		Int("scores", len(scores)).
		Int("comparisons", len(comparisons)).
		Msg("Portfolio analysis complete")

	return &interfaces.AnalysisResult{
		Scores:      scores,
		Benchmarks:  benchmarks,
		Comparisons: comparisons,
	}, nil
}

// ensureBenchmarks reuses the persisted benchmark table when present;
// benchmarks are only regenerated when none exist, so values stay stable
// across runs until explicitly regenerated.
func (s *Service) ensureBenchmarks(ctx context.Context) (map[string]models.SectorBenchmark, error) {
	existing, err := s.storage.ESGStore().ListBenchmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sector benchmarks: %w", err)
	}
	if len(existing) > 0 {
		benchmarks := make(map[string]models.SectorBenchmark, len(existing))
		for _, b := range existing {
			benchmarks[b.Sector] = b
		}
		return benchmarks, nil
	}

	benchmarks, err := s.benchmark.GenerateSectorBenchmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sector benchmarks: %w", err)
	}
	return benchmarks, nil
}

// Compile-time check
var _ interfaces.AnalysisService = (*Service)(nil)
