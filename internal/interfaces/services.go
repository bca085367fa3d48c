// Package interfaces defines service contracts for GreenInvest
package interfaces

import (
	"context"

	"github.com/bobmcallan/greeninvest/internal/models"
)

// CollectorService fetches raw company data from external sources and writes
// flat files under the raw data path.
type CollectorService interface {
	// CollectCompanyData fetches profile, prices, and report URLs for a
	// ticker and writes the raw files. Returns true if anything was written.
	CollectCompanyData(ctx context.Context, ticker string) (bool, error)

	// CollectNewsData fetches the article index and samples article content.
	// The search query is the company name from the raw profile when present,
	// otherwise the ticker.
	CollectNewsData(ctx context.Context, ticker string) (bool, error)

	// ProcessReports downloads report PDFs and writes the combined text file.
	ProcessReports(ctx context.Context, ticker string) (bool, error)
}

// IntegratorService normalizes raw flat files into the persistent store.
type IntegratorService interface {
	// IntegrateCompanyData loads all raw files for a ticker into the store
	// tables with the per-table append/replace semantics.
	IntegrateCompanyData(ctx context.Context, ticker string) error

	// ReplacePortfolio replaces the whole portfolio table.
	ReplacePortfolio(ctx context.Context, positions []models.PortfolioPosition) error

	// SetPosition merges a single position (update-or-append by ticker) in
	// memory, then replaces the whole table.
	SetPosition(ctx context.Context, pos models.PortfolioPosition) error
}

// ScorerService computes and persists ESG scores.
type ScorerService interface {
	// ScoreCompany scores a single ticker and persists the result. A ticker
	// with no ingested text yields the fixed neutral record. Errors surface
	// as (nil, err) for that ticker.
	ScoreCompany(ctx context.Context, ticker string) (*models.ESGScore, error)

	// ScorePortfolio scores all tickers, skipping failures and continuing
	// with the remaining tickers. Never aborts the batch.
	ScorePortfolio(ctx context.Context, tickers []string) ([]*models.ESGScore, error)
}

// BenchmarkService generates sector benchmarks and company comparisons.
type BenchmarkService interface {
	// GenerateSectorBenchmarks draws synthetic per-sector scores and fully
	// replaces the sector_benchmarks table.
	GenerateSectorBenchmarks(ctx context.Context) (map[string]models.SectorBenchmark, error)

	// GenerateComparisons joins company scores against sector benchmarks and
	// fully replaces the comparisons table. Any error aborts the whole
	// operation; partial sets are never persisted.
	GenerateComparisons(ctx context.Context) ([]models.BenchmarkComparison, error)
}

// AnalysisService orchestrates the scoring and benchmarking pipeline.
type AnalysisService interface {
	// RunAnalysis scores the portfolio's tickers, ensures benchmarks exist,
	// and recomputes comparisons. Serialized: one in-flight run at a time.
	RunAnalysis(ctx context.Context) (*AnalysisResult, error)
}

// AnalysisResult summarizes one pipeline run.
type AnalysisResult struct {
	Scores      []*models.ESGScore                `json:"scores"`
	Benchmarks  map[string]models.SectorBenchmark `json:"benchmarks"`
	Comparisons []models.BenchmarkComparison      `json:"comparisons"`
}

// DashboardService produces read-only views and rendered charts.
type DashboardService interface {
	// PortfolioSummary computes the value-weighted ESG view.
	PortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error)

	// RenderPortfolioChart renders the weighted-score bar chart as PNG.
	RenderPortfolioChart(ctx context.Context) ([]byte, error)

	// RenderComparisonChart renders company-vs-benchmark bars for one ticker.
	RenderComparisonChart(ctx context.Context, ticker string) ([]byte, error)
}
