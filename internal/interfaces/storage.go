// Package interfaces defines service contracts for GreenInvest
package interfaces

import (
	"context"

	"github.com/bobmcallan/greeninvest/internal/models"
)

// StorageManager coordinates all storage backends. Each component receives
// it at construction; nothing reaches for a hidden singleton.
type StorageManager interface {
	CompanyStore() CompanyStore
	ContentStore() ContentStore
	ESGStore() ESGStore
	PortfolioStore() PortfolioStore
	FileStore() FileStore

	// RawPath returns the base directory for collector flat files.
	RawPath() string

	Close() error
}

// CompanyStore manages the companies and stock_prices tables.
type CompanyStore interface {
	// SaveCompany upserts one row per ticker (latest write wins).
	SaveCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, ticker string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)

	// AppendPrices appends bars to stock_prices.
	AppendPrices(ctx context.Context, prices []models.StockPrice) error
	GetPrices(ctx context.Context, ticker string) ([]models.StockPrice, error)
}

// ContentStore manages the news, news_content, and reports tables.
type ContentStore interface {
	// AppendNews appends article references to the news table.
	AppendNews(ctx context.Context, items []models.NewsItem) error
	GetNews(ctx context.Context, ticker string) ([]models.NewsItem, error)

	// AppendNewsContent appends sampled article text (append-only).
	AppendNewsContent(ctx context.Context, contents []models.NewsContent) error
	GetNewsContent(ctx context.Context, ticker string) ([]models.NewsContent, error)

	// SaveReportText stores at most one row per ticker, overwriting.
	SaveReportText(ctx context.Context, report *models.ReportText) error
	GetReportText(ctx context.Context, ticker string) (*models.ReportText, error)
}

// ESGStore manages esg_scores, sector_benchmarks, and
// company_benchmark_comparisons.
type ESGStore interface {
	// SaveScore upserts the single logical row for a ticker
	// (delete-matching-then-insert within one unit of work).
	SaveScore(ctx context.Context, score *models.ESGScore) error
	GetScore(ctx context.Context, ticker string) (*models.ESGScore, error)
	ListScores(ctx context.Context) ([]*models.ESGScore, error)

	// ReplaceBenchmarks fully replaces the sector_benchmarks table.
	ReplaceBenchmarks(ctx context.Context, benchmarks []models.SectorBenchmark) error
	ListBenchmarks(ctx context.Context) ([]models.SectorBenchmark, error)

	// ReplaceComparisons fully replaces the comparisons table.
	ReplaceComparisons(ctx context.Context, comparisons []models.BenchmarkComparison) error
	ListComparisons(ctx context.Context) ([]models.BenchmarkComparison, error)
}

// PortfolioStore manages the portfolio table with wholesale-replace
// semantics.
type PortfolioStore interface {
	ReplacePortfolio(ctx context.Context, positions []models.PortfolioPosition) error
	GetPortfolio(ctx context.Context) ([]models.PortfolioPosition, error)
}

// FileStore provides binary file storage in the database (rendered charts).
type FileStore interface {
	SaveFile(ctx context.Context, category, key string, data []byte, contentType string) error
	GetFile(ctx context.Context, category, key string) ([]byte, string, error) // data, contentType, error
	DeleteFile(ctx context.Context, category, key string) error
}
