package server

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/greeninvest/internal/app"
	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
)

// mockStorage is an in-memory StorageManager for handler tests.
type mockStorage struct {
	companies   map[string]*models.Company
	scores      map[string]*models.ESGScore
	positions   []models.PortfolioPosition
	benchmarks  []models.SectorBenchmark
	comparisons []models.BenchmarkComparison
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		companies: make(map[string]*models.Company),
		scores:    make(map[string]*models.ESGScore),
	}
}

func (m *mockStorage) CompanyStore() interfaces.CompanyStore     { return (*mockCompanyStore)(m) }
func (m *mockStorage) ContentStore() interfaces.ContentStore     { return nil }
func (m *mockStorage) ESGStore() interfaces.ESGStore             { return (*mockESGStore)(m) }
func (m *mockStorage) PortfolioStore() interfaces.PortfolioStore { return (*mockPortfolioStore)(m) }
func (m *mockStorage) FileStore() interfaces.FileStore           { return nil }
func (m *mockStorage) RawPath() string                           { return "" }
func (m *mockStorage) Close() error                              { return nil }

type mockCompanyStore mockStorage

func (m *mockCompanyStore) SaveCompany(_ context.Context, company *models.Company) error {
	m.companies[company.Ticker] = company
	return nil
}

func (m *mockCompanyStore) GetCompany(_ context.Context, ticker string) (*models.Company, error) {
	company, ok := m.companies[ticker]
	if !ok {
		return nil, errors.New("company not found")
	}
	return company, nil
}

func (m *mockCompanyStore) ListCompanies(_ context.Context) ([]*models.Company, error) {
	var companies []*models.Company
	for _, c := range m.companies {
		companies = append(companies, c)
	}
	return companies, nil
}

func (m *mockCompanyStore) AppendPrices(_ context.Context, _ []models.StockPrice) error { return nil }
func (m *mockCompanyStore) GetPrices(_ context.Context, _ string) ([]models.StockPrice, error) {
	return nil, nil
}

type mockESGStore mockStorage

func (m *mockESGStore) SaveScore(_ context.Context, score *models.ESGScore) error {
	m.scores[score.Ticker] = score
	return nil
}

func (m *mockESGStore) GetScore(_ context.Context, ticker string) (*models.ESGScore, error) {
	score, ok := m.scores[ticker]
	if !ok {
		return nil, errors.New("score not found")
	}
	return score, nil
}

func (m *mockESGStore) ListScores(_ context.Context) ([]*models.ESGScore, error) {
	var scores []*models.ESGScore
	for _, s := range m.scores {
		scores = append(scores, s)
	}
	return scores, nil
}

func (m *mockESGStore) ReplaceBenchmarks(_ context.Context, benchmarks []models.SectorBenchmark) error {
	m.benchmarks = benchmarks
	return nil
}

func (m *mockESGStore) ListBenchmarks(_ context.Context) ([]models.SectorBenchmark, error) {
	return m.benchmarks, nil
}

func (m *mockESGStore) ReplaceComparisons(_ context.Context, comparisons []models.BenchmarkComparison) error {
	m.comparisons = comparisons
	return nil
}

func (m *mockESGStore) ListComparisons(_ context.Context) ([]models.BenchmarkComparison, error) {
	return m.comparisons, nil
}

type mockPortfolioStore mockStorage

func (m *mockPortfolioStore) ReplacePortfolio(_ context.Context, positions []models.PortfolioPosition) error {
	m.positions = positions
	return nil
}

func (m *mockPortfolioStore) GetPortfolio(_ context.Context) ([]models.PortfolioPosition, error) {
	return m.positions, nil
}

// mockCollector records calls and optionally fails the profile stage.
type mockCollector struct {
	storage    *mockStorage
	collectErr error
	collected  []string
	newsFor    []string
	reportsFor []string
}

func (m *mockCollector) CollectCompanyData(_ context.Context, ticker string) (bool, error) {
	if m.collectErr != nil {
		return false, m.collectErr
	}
	m.collected = append(m.collected, ticker)
	return true, nil
}

func (m *mockCollector) CollectNewsData(_ context.Context, ticker string) (bool, error) {
	m.newsFor = append(m.newsFor, ticker)
	return true, nil
}

func (m *mockCollector) ProcessReports(_ context.Context, ticker string) (bool, error) {
	m.reportsFor = append(m.reportsFor, ticker)
	return true, nil
}

// mockIntegrator writes a company row and appends one price bar per
// integration, mimicking the raw-file load.
type mockIntegrator struct {
	storage    *mockStorage
	integrated []string
	priceRows  int
}

func (m *mockIntegrator) IntegrateCompanyData(ctx context.Context, ticker string) error {
	m.integrated = append(m.integrated, ticker)
	m.priceRows++
	return m.storage.CompanyStore().SaveCompany(ctx, &models.Company{
		Ticker: ticker,
		Name:   ticker + " Corp",
		Sector: "Technology",
	})
}

func (m *mockIntegrator) ReplacePortfolio(ctx context.Context, positions []models.PortfolioPosition) error {
	for _, p := range positions {
		if p.Ticker == "" || p.Shares <= 0 || p.PurchasePrice <= 0 {
			return errors.New("invalid position")
		}
	}
	return m.storage.PortfolioStore().ReplacePortfolio(ctx, positions)
}

func (m *mockIntegrator) SetPosition(ctx context.Context, pos models.PortfolioPosition) error {
	current, _ := m.storage.PortfolioStore().GetPortfolio(ctx)
	return m.ReplacePortfolio(ctx, models.MergePosition(current, pos))
}

type mockAnalysis struct {
	result *interfaces.AnalysisResult
	err    error
	runs   int
}

func (m *mockAnalysis) RunAnalysis(_ context.Context) (*interfaces.AnalysisResult, error) {
	m.runs++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockBenchmarkService struct {
	benchmarks map[string]models.SectorBenchmark
}

func (m *mockBenchmarkService) GenerateSectorBenchmarks(_ context.Context) (map[string]models.SectorBenchmark, error) {
	return m.benchmarks, nil
}

func (m *mockBenchmarkService) GenerateComparisons(_ context.Context) ([]models.BenchmarkComparison, error) {
	return nil, nil
}

type mockDashboard struct {
	summary  *models.PortfolioSummary
	chartPNG []byte
	chartErr error
}

func (m *mockDashboard) PortfolioSummary(_ context.Context) (*models.PortfolioSummary, error) {
	return m.summary, nil
}

func (m *mockDashboard) RenderPortfolioChart(_ context.Context) ([]byte, error) {
	if m.chartErr != nil {
		return nil, m.chartErr
	}
	return m.chartPNG, nil
}

func (m *mockDashboard) RenderComparisonChart(_ context.Context, ticker string) ([]byte, error) {
	if m.chartErr != nil {
		return nil, m.chartErr
	}
	return append(m.chartPNG, []byte(ticker)...), nil
}

// testHarness bundles the app and its mocks for handler tests.
type testHarness struct {
	app        *app.App
	storage    *mockStorage
	collector  *mockCollector
	integrator *mockIntegrator
	analysis   *mockAnalysis
	dashboard  *mockDashboard
}

func newTestHarness() *testHarness {
	storage := newMockStorage()
	collector := &mockCollector{storage: storage}
	integrator := &mockIntegrator{storage: storage}
	analysis := &mockAnalysis{result: &interfaces.AnalysisResult{}}
	dashboard := &mockDashboard{
		summary:  &models.PortfolioSummary{},
		chartPNG: []byte("png-bytes-"),
	}

	a := &app.App{
		Config:      common.NewDefaultConfig(),
		Logger:      common.NewSilentLogger(),
		Storage:     storage,
		Collector:   collector,
		Integrator:  integrator,
		Benchmark:   &mockBenchmarkService{benchmarks: map[string]models.SectorBenchmark{"Technology": {Sector: "Technology"}}},
		Analysis:    analysis,
		Dashboard:   dashboard,
		StartupTime: time.Now(),
	}

	return &testHarness{
		app:        a,
		storage:    storage,
		collector:  collector,
		integrator: integrator,
		analysis:   analysis,
		dashboard:  dashboard,
	}
}
