package integrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greeninvest/internal/common"
	"github.com/bobmcallan/greeninvest/internal/interfaces"
	"github.com/bobmcallan/greeninvest/internal/models"
	"github.com/bobmcallan/greeninvest/internal/rawfiles"
)

type mockStorageManager struct {
	company   *mockCompanyStore
	content   *mockContentStore
	portfolio *mockPortfolioStore
}

func (m *mockStorageManager) CompanyStore() interfaces.CompanyStore     { return m.company }
func (m *mockStorageManager) ContentStore() interfaces.ContentStore     { return m.content }
func (m *mockStorageManager) ESGStore() interfaces.ESGStore             { return nil }
func (m *mockStorageManager) PortfolioStore() interfaces.PortfolioStore { return m.portfolio }
func (m *mockStorageManager) FileStore() interfaces.FileStore           { return nil }
func (m *mockStorageManager) RawPath() string                           { return "" }
func (m *mockStorageManager) Close() error                              { return nil }

type mockCompanyStore struct {
	companies map[string]*models.Company
	prices    []models.StockPrice
}

func (m *mockCompanyStore) SaveCompany(_ context.Context, company *models.Company) error {
	if m.companies == nil {
		m.companies = make(map[string]*models.Company)
	}
	m.companies[company.Ticker] = company
	return nil
}

func (m *mockCompanyStore) GetCompany(_ context.Context, ticker string) (*models.Company, error) {
	return m.companies[ticker], nil
}

func (m *mockCompanyStore) ListCompanies(_ context.Context) ([]*models.Company, error) {
	return nil, nil
}

func (m *mockCompanyStore) AppendPrices(_ context.Context, prices []models.StockPrice) error {
	m.prices = append(m.prices, prices...)
	return nil
}

func (m *mockCompanyStore) GetPrices(_ context.Context, _ string) ([]models.StockPrice, error) {
	return m.prices, nil
}

type mockContentStore struct {
	news     []models.NewsItem
	contents []models.NewsContent
	reports  map[string]*models.ReportText
}

func (m *mockContentStore) AppendNews(_ context.Context, items []models.NewsItem) error {
	m.news = append(m.news, items...)
	return nil
}

func (m *mockContentStore) GetNews(_ context.Context, _ string) ([]models.NewsItem, error) {
	return m.news, nil
}

func (m *mockContentStore) AppendNewsContent(_ context.Context, contents []models.NewsContent) error {
	m.contents = append(m.contents, contents...)
	return nil
}

func (m *mockContentStore) GetNewsContent(_ context.Context, _ string) ([]models.NewsContent, error) {
	return m.contents, nil
}

func (m *mockContentStore) SaveReportText(_ context.Context, report *models.ReportText) error {
	if m.reports == nil {
		m.reports = make(map[string]*models.ReportText)
	}
	m.reports[report.Ticker] = report
	return nil
}

func (m *mockContentStore) GetReportText(_ context.Context, ticker string) (*models.ReportText, error) {
	return m.reports[ticker], nil
}

type mockPortfolioStore struct {
	positions []models.PortfolioPosition
	replaces  int
}

func (m *mockPortfolioStore) ReplacePortfolio(_ context.Context, positions []models.PortfolioPosition) error {
	m.positions = positions
	m.replaces++
	return nil
}

func (m *mockPortfolioStore) GetPortfolio(_ context.Context) ([]models.PortfolioPosition, error) {
	return m.positions, nil
}

func newTestIntegrator(t *testing.T) (*Service, rawfiles.Dir, *mockStorageManager) {
	t.Helper()
	storage := &mockStorageManager{
		company:   &mockCompanyStore{},
		content:   &mockContentStore{},
		portfolio: &mockPortfolioStore{},
	}
	raw := rawfiles.NewDir(t.TempDir())
	return NewService(storage, raw, common.NewSilentLogger()), raw, storage
}

func TestIntegrateCompanyDataLoadsAllFiles(t *testing.T) {
	svc, raw, storage := newTestIntegrator(t)

	require.NoError(t, raw.WriteCompanyProfile("ACME", &models.CompanyProfile{
		Ticker: "ACME", ShortName: "Acme Corp", Sector: "Technology", Employees: 1200, MarketCap: 5e9,
	}))
	require.NoError(t, raw.WritePrices("ACME", []models.StockPrice{
		{Ticker: "ACME", Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), Close: 10},
	}))
	require.NoError(t, raw.WriteNews("ACME", []models.NewsItem{
		{Ticker: "ACME", Title: "Acme goes green", URL: "https://news.example/1"},
	}))
	require.NoError(t, raw.WriteNewsContent("ACME", []models.NewsContent{
		{Ticker: "ACME", URL: "https://news.example/1", Content: "carbon cuts"},
	}))
	require.NoError(t, raw.WriteReportText("ACME", "sustainability report text"))

	require.NoError(t, svc.IntegrateCompanyData(context.Background(), "acme"))

	company := storage.company.companies["ACME"]
	require.NotNil(t, company)
	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, "Technology", company.Sector)

	assert.Len(t, storage.company.prices, 1)
	assert.Len(t, storage.content.news, 1)
	assert.Len(t, storage.content.contents, 1)
	require.Contains(t, storage.content.reports, "ACME")
	assert.Equal(t, "sustainability report text", storage.content.reports["ACME"].Text)
}

func TestIntegrateCompanyDataSkipsMissingOptionalFiles(t *testing.T) {
	svc, raw, storage := newTestIntegrator(t)
	require.NoError(t, raw.WriteCompanyProfile("ACME", &models.CompanyProfile{Ticker: "ACME", ShortName: "Acme"}))

	require.NoError(t, svc.IntegrateCompanyData(context.Background(), "ACME"))

	assert.Contains(t, storage.company.companies, "ACME")
	assert.Empty(t, storage.company.prices)
	assert.Empty(t, storage.content.news)
}

func TestIntegrateCompanyDataRequiresProfile(t *testing.T) {
	svc, _, _ := newTestIntegrator(t)
	assert.Error(t, svc.IntegrateCompanyData(context.Background(), "GHOST"))
}

func TestReplacePortfolioValidates(t *testing.T) {
	svc, _, storage := newTestIntegrator(t)

	err := svc.ReplacePortfolio(context.Background(), []models.PortfolioPosition{
		{Ticker: "acme", Shares: 10, PurchasePrice: 5},
	})
	require.NoError(t, err)
	require.Len(t, storage.portfolio.positions, 1)
	assert.Equal(t, "ACME", storage.portfolio.positions[0].Ticker)

	assert.Error(t, svc.ReplacePortfolio(context.Background(), []models.PortfolioPosition{
		{Ticker: "ACME", Shares: 0, PurchasePrice: 5},
	}))
	assert.Error(t, svc.ReplacePortfolio(context.Background(), []models.PortfolioPosition{
		{Ticker: "", Shares: 1, PurchasePrice: 5},
	}))
	assert.Error(t, svc.ReplacePortfolio(context.Background(), []models.PortfolioPosition{
		{Ticker: "ACME", Shares: 1, PurchasePrice: -2},
	}))
}

func TestSetPositionMergesThenReplaces(t *testing.T) {
	svc, _, storage := newTestIntegrator(t)
	storage.portfolio.positions = []models.PortfolioPosition{
		{Ticker: "ACME", Shares: 10, PurchasePrice: 5},
		{Ticker: "GLOBEX", Shares: 3, PurchasePrice: 20},
	}

	require.NoError(t, svc.SetPosition(context.Background(), models.PortfolioPosition{
		Ticker: "ACME", Shares: 15, PurchasePrice: 6,
	}))

	require.Len(t, storage.portfolio.positions, 2)
	assert.Equal(t, 15.0, storage.portfolio.positions[0].Shares)
	assert.Equal(t, 1, storage.portfolio.replaces)

	require.NoError(t, svc.SetPosition(context.Background(), models.PortfolioPosition{
		Ticker: "INITECH", Shares: 1, PurchasePrice: 100,
	}))
	assert.Len(t, storage.portfolio.positions, 3)
}
